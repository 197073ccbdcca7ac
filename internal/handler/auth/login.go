// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"net/http"

	"dinehub/internal/api"
	"dinehub/internal/cache"
	"dinehub/internal/service"

	"github.com/labstack/echo/v4"
)

// Authenticator 登入所需的服務
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// LoginHandler 使用 Email/Password 驗證並回傳 JWT 與使用者資料
// @Summary     登入使用者
// @Description 驗證帳密後發行新的 session 與存取令牌；連續失敗過多次會暫時鎖定
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email    formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} api.Result
// @Failure     400      {object} api.Result
// @Failure     401      {object} api.Result
// @Failure     404      {object} api.Result
// @Failure     429      {object} api.Result
// @Failure     500      {object} api.Result
// @Router      /auth/login [post]
func LoginHandler(svc Authenticator, limiter *cache.LoginLimiter) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.BadRequest("invalid form data"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.BadRequest(err.Error()))
		}

		ctx := c.Request().Context()
		if !limiter.Allowed(ctx, req.Email) {
			return c.JSON(http.StatusTooManyRequests, api.Result{
				Status:  http.StatusTooManyRequests,
				Message: "Too many failed login attempts, try again later",
				Error:   "rate_limited",
			})
		}

		res, err := svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			switch service.KindOf(err) {
			case service.KindInvalidCredentials, service.KindNotFound:
				limiter.Fail(ctx, req.Email)
			}
			r := api.NewErrorResult(err)
			return c.JSON(r.Status, r)
		}
		limiter.Reset(ctx, req.Email)

		out := api.NewResult(http.StatusOK, "Login successful", res.Profile)
		out.Token = res.Token
		out.ExpiresAt = &res.ExpiresAt
		return c.JSON(http.StatusOK, out)
	}
}
