// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"dinehub/internal/cache"
	"dinehub/internal/database"
	"dinehub/internal/handler"
	"dinehub/internal/handler/auth"
	"dinehub/internal/handler/customers"
	"dinehub/internal/handler/restaurants"
	"dinehub/internal/handler/users"
	"dinehub/internal/middleware"
	"dinehub/internal/service"
)

// Deps 路由需要的相依元件
type Deps struct {
	DB          database.DB
	Cache       cache.Cache
	Identity    *service.IdentityService
	Restaurants *service.RestaurantService
	Limiter     *cache.LoginLimiter
	JWTSecret   string
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.JWTSecret)
	requireAdmin := middleware.RequireAdmin(d.JWTSecret)
	optionalAuth := middleware.OptionalAuth(d.JWTSecret)

	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache), requireAuth)

	// 註冊與登入；admin 帳號只能由管理員建立 (handler 檢查 claims)
	api.POST("/users", users.CreateUserHandler(d.Identity), optionalAuth)
	api.POST("/auth/login", auth.LoginHandler(d.Identity, d.Limiter))
	api.GET("/users/me", users.GetMeHandler(d.Identity), requireAuth)

	api.POST("/customers", customers.CreateCustomerHandler(d.Identity))
	api.GET("/customers/:id", customers.GetCustomerHandler(d.Identity), requireAdmin)

	// 公開餐廳查詢
	api.GET("/restaurants", restaurants.ListHandler(d.Restaurants, service.ViewPublic))
	api.GET("/restaurants/:id", restaurants.GetHandler(d.Restaurants))

	// 管理員專屬餐廳維護
	api.POST("/restaurants", restaurants.CreateHandler(d.Restaurants), requireAdmin)
	api.PUT("/restaurants/:id", restaurants.UpdateHandler(d.Restaurants), requireAdmin)
	api.PATCH("/restaurants/:id/deactivate", restaurants.DeactivateHandler(d.Restaurants), requireAdmin)
	api.DELETE("/restaurants/:id", restaurants.DeleteHandler(d.Restaurants), requireAdmin)

	admin := api.Group("/admin", requireAdmin)
	admin.GET("/restaurants", restaurants.ListHandler(d.Restaurants, service.ViewAdmin))
}
