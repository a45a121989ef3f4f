package handlers

import (
	"go-echo-newsroom/internal/middleware"
	"go-echo-newsroom/internal/models"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health   *HealthHandler
	Articles *ArticleHandler
	Admin    *AdminHandler
}

// Register mounts the API under /api. Locale negotiation is expected to be
// installed on e already.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	api := e.Group("/api")

	if h.Health != nil {
		api.GET("/health", h.Health.Check)
	}

	v1 := api.Group("/v1")
	v1.GET("/articles/:id", h.Articles.Get, middleware.OptionalJWTAuth(jwtSecret))

	admin := v1.Group("/admin/articles", middleware.JWTAuth(jwtSecret))
	admin.POST("", h.Admin.Create, middleware.RequireStaff())
	admin.PUT("/:id", h.Admin.Update, middleware.RequireRole(models.RoleEditor))
	admin.GET("", h.Admin.Index, middleware.RequireStaff())
}
