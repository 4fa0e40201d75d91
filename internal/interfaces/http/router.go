package http

import (
	htmltemplate "html/template"

	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/application/console/admin"
	"github.com/clinicplace/console/internal/application/console/dashboard"
	"github.com/clinicplace/console/internal/infrastructure/auth"
	"github.com/clinicplace/console/internal/infrastructure/cache"
	"github.com/clinicplace/console/internal/infrastructure/config"
	"github.com/clinicplace/console/internal/infrastructure/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/metrics"
	"github.com/clinicplace/console/internal/infrastructure/ratelimit"
	"github.com/clinicplace/console/internal/interfaces/http/handlers"
	"github.com/clinicplace/console/internal/interfaces/http/middleware"
	"github.com/clinicplace/console/internal/interfaces/http/routes"
	"github.com/clinicplace/console/internal/shared/logger"
	"github.com/clinicplace/console/internal/shared/services/markdown"
)

// RouterDeps are the process-wide services the router wires handlers to.
type RouterDeps struct {
	Config  *config.Config
	Client  *marketplace.Client
	Store   cache.SessionStore
	Limiter ratelimit.Limiter
	Metrics *metrics.Metrics
	Views   *htmltemplate.Template
	Logger  logger.Interface
}

// Router represents the HTTP router configuration
type Router struct {
	engine           *gin.Engine
	deps             RouterDeps
	adminHandler     *handlers.AdminHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(deps RouterDeps) *Router {
	engine := gin.New()
	engine.SetHTMLTemplate(deps.Views)

	cfg := deps.Config
	renderer := markdown.NewRenderer()

	adminService := admin.NewService(admin.Config{
		PageSize:        cfg.Console.PageSize,
		ReviewClinicCap: cfg.Console.ReviewClinicCap,
	}, renderer, deps.Metrics, deps.Logger.Named("admin"))

	dashboardService := dashboard.NewService(dashboard.Config{
		RecentLimit:  cfg.Console.RecentLimit,
		SupportEmail: cfg.Console.SupportEmail,
	}, renderer, deps.Logger.Named("dashboard"))

	client := deps.Client
	adminHandler := handlers.NewAdminHandler(adminService, func(token string) admin.API {
		return client.WithToken(token)
	}, deps.Store, deps.Logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, func(token string) dashboard.API {
		return client.WithToken(token)
	}, deps.Logger)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret)

	return &Router{
		engine:           engine,
		deps:             deps,
		adminHandler:     adminHandler,
		dashboardHandler: dashboardHandler,
		healthHandler:    handlers.NewHealthHandler(),
		authMiddleware:   middleware.NewAuthMiddleware(jwtService, cfg.Auth.Cookie.Name, deps.Logger),
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	cfg := r.deps.Config

	r.engine.Use(middleware.Logger(r.deps.Logger))
	r.engine.Use(middleware.Recovery(r.deps.Logger))
	r.engine.Use(middleware.Metrics(r.deps.Metrics))

	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/metrics", gin.WrapH(r.deps.Metrics.Handler()))

	console := r.engine.Group("")
	console.Use(
		middleware.Session(cfg.Auth.Cookie, cfg.Redis.SessionTTL()),
		middleware.CSRF(cfg.Auth.Cookie),
		r.authMiddleware.RequireAuth(),
		middleware.RateLimit(r.deps.Limiter, r.deps.Logger),
	)

	routes.SetupDashboardRoutes(console, &routes.DashboardRouteConfig{
		DashboardHandler: r.dashboardHandler,
	})
	routes.SetupAdminRoutes(console, &routes.AdminRouteConfig{
		AdminHandler: r.adminHandler,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
