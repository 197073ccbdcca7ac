package users

import (
	"context"
	"net/http"
	"strings"

	"dinehub/internal/api"
	"dinehub/internal/middleware"
	"dinehub/internal/model"
	"dinehub/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// IdentityService 使用者相關的服務
type IdentityService interface {
	CreateUser(ctx context.Context, in service.CreateUserInput) (*model.User, error)
	Profile(ctx context.Context, userID uuid.UUID) (*service.Profile, error)
}

// @Summary     Create a new user
// @Description 建立帳號 (Email 會自動轉小寫)；customer 類型必須提供信用卡號，customerID 可指定新 Customer 的 ID。
// @Description 建立 admin 帳號需帶管理員 Token。
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       name             formData string true  "使用者姓名"
// @Param       phone            formData string true  "電話"
// @Param       email            formData string true  "使用者 Email (lowercase)"
// @Param       password         formData string true  "使用者密碼 (至少 6 碼，最多 72 bytes)"
// @Param       userType         formData string true  "admin 或 customer"
// @Param       customerID       formData string false "新 Customer 的 ID (選填，不可與既有重複)"
// @Param       creditCardNumber formData string false "信用卡號 (customer 必填)"
// @Success     201      {object} api.Result
// @Failure     400      {object} api.Result
// @Failure     401      {object} api.Result
// @Failure     403      {object} api.Result
// @Failure     409      {object} api.Result
// @Failure     500      {object} api.Result
// @Security    ApiKeyAuth
// @Router      /users [post]
func CreateUserHandler(svc IdentityService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.BadRequest("invalid form data"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.BadRequest(err.Error()))
		}
		if r := adminGate(c, req.UserType); r != nil {
			return c.JSON(r.Status, r)
		}

		user, err := svc.CreateUser(c.Request().Context(), service.CreateUserInput{
			Name:             req.Name,
			Phone:            req.Phone,
			Email:            req.Email,
			Password:         req.Password,
			UserType:         req.UserType,
			CustomerID:       req.CustomerID,
			CreditCardNumber: req.CreditCardNumber,
		})
		if err != nil {
			r := api.NewErrorResult(err)
			return c.JSON(r.Status, r)
		}
		return c.JSON(http.StatusCreated, api.NewResult(http.StatusCreated, "User created successfully", user))
	}
}

// adminGate 只有管理員能建立 admin 帳號
func adminGate(c echo.Context, userType string) *api.Result {
	if !strings.EqualFold(strings.TrimSpace(userType), string(model.UserTypeAdmin)) {
		return nil
	}
	claims := middleware.Claims(c)
	switch {
	case claims == nil:
		return &api.Result{Status: http.StatusUnauthorized, Message: "admin token required to create admin accounts", Error: "unauthorized", Field: "userType"}
	case !claims.IsAdmin():
		return &api.Result{Status: http.StatusForbidden, Message: "admin privileges required", Error: "forbidden", Field: "userType"}
	}
	return nil
}

// GetMeHandler 取得當前使用者資訊
// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者資料，customer 會附上綁定的信用卡號
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Result
// @Failure     401 {object} api.Result
// @Failure     404 {object} api.Result
// @Failure     500 {object} api.Result
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler(svc IdentityService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.Claims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, api.Result{Status: http.StatusUnauthorized, Message: "invalid or missing token"})
		}
		id, err := claims.UserID()
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.Result{Status: http.StatusUnauthorized, Message: "invalid token subject"})
		}

		profile, err := svc.Profile(c.Request().Context(), id)
		if err != nil {
			r := api.NewErrorResult(err)
			return c.JSON(r.Status, r)
		}
		return c.JSON(http.StatusOK, api.NewResult(http.StatusOK, "", profile))
	}
}
