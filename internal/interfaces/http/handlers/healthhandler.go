package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/shared/utils"
	"github.com/clinicplace/console/internal/shared/version"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status":  "healthy",
		"version": version.String(),
	})
}
