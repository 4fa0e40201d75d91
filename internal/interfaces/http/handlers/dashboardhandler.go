package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/application/console/dashboard"
	apperrors "github.com/clinicplace/console/internal/shared/errors"
	"github.com/clinicplace/console/internal/shared/authorization"
	"github.com/clinicplace/console/internal/shared/logger"
	"github.com/clinicplace/console/internal/shared/utils"
)

var errSignIn = apperrors.NewUnauthorizedError("Sign in to continue")

// DashboardAPIFactory returns the marketplace API acting with token.
type DashboardAPIFactory func(token string) dashboard.API

// DashboardHandler serves the signed-in member's dashboard.
type DashboardHandler struct {
	service *dashboard.Service
	api     DashboardAPIFactory
	logger  logger.Interface
}

func NewDashboardHandler(service *dashboard.Service, api DashboardAPIFactory, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		api:     api,
		logger:  logger,
	}
}

type dashboardView struct {
	Layout
	Page *dashboard.Page
}

type subscriptionsView struct {
	Layout
	Subscriptions dashboard.Subscriptions
}

type upgradeView struct {
	Layout
	Upgrade *dashboard.Upgrade
}

// Home handles GET / by sending admins to the console and everyone else
// to their dashboard.
func (h *DashboardHandler) Home(c *gin.Context) {
	viewer, _ := authorization.ViewerFrom(c)
	if viewer.IsAdmin() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// Show handles GET /dashboard
func (h *DashboardHandler) Show(c *gin.Context) {
	viewer, ok := authorization.ViewerFrom(c)
	if !ok {
		utils.ErrorPageWithError(c, errSignIn)
		return
	}

	page := h.service.Load(c.Request.Context(), h.api(authorization.TokenFrom(c)), viewer)
	c.HTML(http.StatusOK, "dashboard.tmpl", dashboardView{
		Layout: newLayout(c, "Dashboard"),
		Page:   page,
	})
}

// Subscriptions handles GET /dashboard/subscriptions, the retry of the
// subscriptions panel.
func (h *DashboardHandler) Subscriptions(c *gin.Context) {
	viewer, ok := authorization.ViewerFrom(c)
	if !ok {
		utils.ErrorPageWithError(c, errSignIn)
		return
	}

	subs := h.service.Subscriptions(c.Request.Context(), h.api(authorization.TokenFrom(c)), viewer)
	c.HTML(http.StatusOK, "mysubscriptions.tmpl", subscriptionsView{
		Layout:        newLayout(c, "My Subscriptions"),
		Subscriptions: subs,
	})
}

// Upgrade handles GET /dashboard/upgrade
func (h *DashboardHandler) Upgrade(c *gin.Context) {
	viewer, ok := authorization.ViewerFrom(c)
	if !ok {
		utils.ErrorPageWithError(c, errSignIn)
		return
	}

	up := h.service.Upgrade(c.Request.Context(), h.api(authorization.TokenFrom(c)), viewer)
	c.HTML(http.StatusOK, "upgrade.tmpl", upgradeView{
		Layout:  newLayout(c, "Upgrade Subscription"),
		Upgrade: up,
	})
}
