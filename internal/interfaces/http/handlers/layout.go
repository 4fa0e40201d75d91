package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/interfaces/http/middleware"
	"github.com/clinicplace/console/internal/shared/authorization"
)

// Layout is what the page chrome of every view needs.
type Layout struct {
	Title  string
	Viewer *domain.Viewer
	CSRF   string
}

func newLayout(c *gin.Context, title string) Layout {
	l := Layout{
		Title: title,
		CSRF:  middleware.CSRFToken(c),
	}
	if viewer, ok := authorization.ViewerFrom(c); ok {
		l.Viewer = &viewer
	}
	return l
}
