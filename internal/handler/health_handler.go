package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_storefront/internal/utils"
)

var startTime = time.Now()

// CatalogPinger reports whether the remote catalog is reachable.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	catalog CatalogPinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(catalog CatalogPinger) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// GetHealth responds with service and catalog status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	catalogStatus := "connected"
	if err := h.catalog.Ping(c.Request.Context()); err != nil {
		catalogStatus = "disconnected"
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"catalog": gin.H{
			"status": catalogStatus,
		},
	})
}
