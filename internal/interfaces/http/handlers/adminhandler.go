package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/application/console/admin"
	"github.com/clinicplace/console/internal/application/console/resources"
	"github.com/clinicplace/console/internal/application/console/session"
	"github.com/clinicplace/console/internal/application/console/table"
	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/cache"
	"github.com/clinicplace/console/internal/interfaces/http/middleware"
	"github.com/clinicplace/console/internal/shared/authorization"
	apperrors "github.com/clinicplace/console/internal/shared/errors"
	"github.com/clinicplace/console/internal/shared/logger"
	"github.com/clinicplace/console/internal/shared/utils"
)

var (
	errNotFound       = apperrors.NewNotFoundError("Not found")
	errSessionExpired = apperrors.NewUnauthorizedError("The marketplace rejected your session. Sign in again to continue")
)

// AdminAPIFactory returns the marketplace API acting with token.
type AdminAPIFactory func(token string) admin.API

// AdminHandler serves the admin console. Every write answers with a
// redirect so reloading a page never repeats it.
type AdminHandler struct {
	service *admin.Service
	api     AdminAPIFactory
	store   cache.SessionStore
	logger  logger.Interface
}

func NewAdminHandler(service *admin.Service, api AdminAPIFactory, store cache.SessionStore, logger logger.Interface) *AdminHandler {
	return &AdminHandler{
		service: service,
		api:     api,
		store:   store,
		logger:  logger,
	}
}

type adminView struct {
	Layout
	Page *admin.Page
}

type dialogView struct {
	Layout
	Dialog  *admin.Dialog
	Flashes []cache.Flash
}

func (h *AdminHandler) screen(c *gin.Context) (*admin.Screen, *session.Session) {
	sess := session.New(h.store, middleware.SessionID(c))
	return h.service.Screen(h.api(authorization.TokenFrom(c)), sess), sess
}

// Show handles GET /admin
func (h *AdminHandler) Show(c *gin.Context) {
	sc, _ := h.screen(c)
	tab := admin.ParseTab(c.Query("tab"))

	page, err := sc.Load(c.Request.Context(), tab, admin.EventFromQuery(c.Request.URL.Query()))
	if errors.Is(err, domain.ErrAccessDenied) {
		h.logger.Warnw("marketplace rejected viewer credentials", "tab", tab, "error", err)
		utils.ErrorPageWithError(c, errSessionExpired)
		return
	}
	if err != nil {
		h.logger.Errorw("failed to load admin console", "tab", tab, "error", err)
		utils.ErrorPageWithError(c, apperrors.NewInternalError("Failed to load the admin console"))
		return
	}

	c.HTML(http.StatusOK, "admin.tmpl", adminView{
		Layout: newLayout(c, "Admin"),
		Page:   page,
	})
}

// View handles GET /admin/:resource/:id. The id "new" opens the create
// form, which only plans have.
func (h *AdminHandler) View(c *gin.Context) {
	kind, ok := admin.ParseKind(c.Param("resource"))
	if !ok {
		utils.ErrorPageWithError(c, errNotFound)
		return
	}

	id := c.Param("id")
	if id == "new" {
		if kind != resources.KindPlans {
			utils.ErrorPageWithError(c, errNotFound)
			return
		}
		sc, sess := h.screen(c)
		h.renderDialog(c, sess, http.StatusOK, sc.NewPlan())
		return
	}
	h.open(c, kind, id, resources.ActionView)
}

// Open handles GET /admin/:resource/:id/:action
func (h *AdminHandler) Open(c *gin.Context) {
	kind, ok := admin.ParseKind(c.Param("resource"))
	if !ok {
		utils.ErrorPageWithError(c, errNotFound)
		return
	}
	h.open(c, kind, c.Param("id"), c.Param("action"))
}

func (h *AdminHandler) open(c *gin.Context, kind table.Kind, id, action string) {
	sc, sess := h.screen(c)

	d, err := sc.Open(c.Request.Context(), kind, id, action)
	switch {
	case isMissing(err):
		utils.ErrorPageWithError(c, errNotFound)
	case err != nil:
		h.logger.Warnw("failed to open dialog", "kind", kind, "id", id, "action", action, "error", err)
		c.Redirect(http.StatusSeeOther, admin.TabFor(kind).URL())
	default:
		h.renderDialog(c, sess, http.StatusOK, d)
	}
}

// Perform handles POST /admin/:resource/:id/:action. Destructive actions
// need the confirmed=yes field the confirmation dialog posts.
func (h *AdminHandler) Perform(c *gin.Context) {
	kind, ok := admin.ParseKind(c.Param("resource"))
	if !ok {
		utils.ErrorPageWithError(c, errNotFound)
		return
	}
	id, action := c.Param("id"), c.Param("action")

	if kind == resources.KindUsers && action == resources.ActionAssign {
		h.assign(c)
		return
	}

	sc, _ := h.screen(c)
	res, err := sc.Invoke(c.Request.Context(), kind, id, action, c.PostForm("confirmed") == "yes")
	switch {
	case errors.Is(err, table.ErrConfirmationRequired):
		c.Redirect(http.StatusSeeOther, admin.Path(kind, id, action))
	case isMissing(err):
		utils.ErrorPageWithError(c, errNotFound)
	default:
		c.Redirect(http.StatusSeeOther, returnTo(res, kind))
	}
}

// assign handles POST /admin/users/:id/assign
func (h *AdminHandler) assign(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorPageWithError(c, err)
		return
	}
	// A missing or malformed plan id is rejected by Assign's validation.
	planID, _ := strconv.ParseInt(c.PostForm("plan_id"), 10, 64)

	sc, _ := h.screen(c)
	res, _ := sc.Assign(c.Request.Context(), userID, planID)
	c.Redirect(http.StatusSeeOther, returnTo(res, resources.KindUsers))
}

// Save handles POST /admin/:resource/:id
func (h *AdminHandler) Save(c *gin.Context) {
	kind, ok := admin.ParseKind(c.Param("resource"))
	if !ok {
		utils.ErrorPageWithError(c, errNotFound)
		return
	}
	h.save(c, kind, c.Param("id"), table.ModeEdit)
}

// Create handles POST /admin/:resource; only plans can be created.
func (h *AdminHandler) Create(c *gin.Context) {
	kind, ok := admin.ParseKind(c.Param("resource"))
	if !ok || kind != resources.KindPlans {
		utils.ErrorPageWithError(c, errNotFound)
		return
	}
	h.save(c, kind, "", table.ModeCreate)
}

func (h *AdminHandler) save(c *gin.Context, kind table.Kind, id string, mode table.Mode) {
	if err := c.Request.ParseForm(); err != nil {
		utils.ErrorPageWithError(c, apperrors.NewBadRequestError("invalid form"))
		return
	}

	sc, sess := h.screen(c)
	d, res, err := sc.Save(c.Request.Context(), kind, id, mode, c.Request.PostForm)
	switch {
	case errors.Is(err, admin.ErrInvalidForm):
		h.renderDialog(c, sess, http.StatusUnprocessableEntity, d)
	case d != nil:
		// The API refused the change; the form stays open with what was typed.
		h.renderDialog(c, sess, http.StatusOK, d)
	case isMissing(err):
		utils.ErrorPageWithError(c, errNotFound)
	default:
		c.Redirect(http.StatusSeeOther, returnTo(res, kind))
	}
}

func (h *AdminHandler) renderDialog(c *gin.Context, sess *session.Session, status int, d *admin.Dialog) {
	flashes, err := sess.Flashes(c.Request.Context())
	if err != nil {
		h.logger.Warnw("failed to read notifications", "error", err)
	}
	c.HTML(status, "dialog.tmpl", dialogView{
		Layout:  newLayout(c, "Admin"),
		Dialog:  d,
		Flashes: flashes,
	})
}

func isMissing(err error) bool {
	return errors.Is(err, table.ErrItemNotFound) ||
		errors.Is(err, table.ErrUnknownAction) ||
		errors.Is(err, table.ErrNoHandler) ||
		errors.Is(err, table.ErrReadOnly)
}

func returnTo(res admin.Result, kind table.Kind) string {
	if res.ReturnTo != "" {
		return res.ReturnTo
	}
	return admin.TabFor(kind).URL()
}
