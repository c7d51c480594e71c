package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/cobuy/internal/service"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	svc *service.RecommendationService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(svc *service.RecommendationService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"trained": h.svc.IsTrained(),
	})
}
