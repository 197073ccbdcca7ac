// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"dinehub/internal/api"
	"dinehub/internal/cache"
	"dinehub/internal/database"

	"github.com/labstack/echo/v4"
)

const pingKey = "health:ping"

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查（需通過認證）
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     401 {object} api.Result
// @Failure     500 {object} api.Result
// @Security    ApiKeyAuth
// @Router      /ping [get]
func PingHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx := ctx.Request().Context()
		if err := db.Ping(reqCtx); err != nil {
			return ctx.JSON(http.StatusInternalServerError, api.Result{Status: http.StatusInternalServerError, Message: "database unhealthy"})
		}
		if err := c.Set(reqCtx, pingKey, time.Now().Unix(), time.Minute).Err(); err != nil {
			return ctx.JSON(http.StatusInternalServerError, api.Result{Status: http.StatusInternalServerError, Message: "cache unhealthy"})
		}
		return ctx.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
