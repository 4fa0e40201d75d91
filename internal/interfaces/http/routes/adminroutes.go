package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/interfaces/http/handlers"
	"github.com/clinicplace/console/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for admin console routes.
type AdminRouteConfig struct {
	AdminHandler *handlers.AdminHandler
}

// SetupAdminRoutes configures the admin console. The group must already
// authenticate the viewer.
func SetupAdminRoutes(group *gin.RouterGroup, cfg *AdminRouteConfig) {
	admin := group.Group("/admin")
	admin.Use(authorization.RequireAdmin())
	{
		admin.GET("", cfg.AdminHandler.Show)

		// Dialogs: /admin/plans/new, /admin/users/3, /admin/users/3/edit
		admin.GET("/:resource/:id", cfg.AdminHandler.View)
		admin.GET("/:resource/:id/:action", cfg.AdminHandler.Open)

		// Writes: /admin/plans, /admin/users/3, /admin/users/3/delete, /admin/users/3/assign
		admin.POST("/:resource", cfg.AdminHandler.Create)
		admin.POST("/:resource/:id", cfg.AdminHandler.Save)
		admin.POST("/:resource/:id/:action", cfg.AdminHandler.Perform)
	}
}
