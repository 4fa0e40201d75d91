package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/interfaces/http/handlers"
)

// DashboardRouteConfig holds dependencies for member dashboard routes.
type DashboardRouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
}

// SetupDashboardRoutes configures the member dashboard. The group must
// already authenticate the viewer.
func SetupDashboardRoutes(group *gin.RouterGroup, cfg *DashboardRouteConfig) {
	group.GET("/", cfg.DashboardHandler.Home)

	dashboard := group.Group("/dashboard")
	{
		dashboard.GET("", cfg.DashboardHandler.Show)
		dashboard.GET("/subscriptions", cfg.DashboardHandler.Subscriptions)
		dashboard.GET("/upgrade", cfg.DashboardHandler.Upgrade)
	}
}
