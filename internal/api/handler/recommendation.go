package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/cobuy/internal/service"
)

// RecommendationHandler handles recommendation endpoints.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler.
// Parameters:
//   - svc: recommendation service instance.
//
// Returns:
//   - *RecommendationHandler: initialized handler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Input []int `json:"input" binding:"required,min=1"`
}

// Recommend handles POST /api/v1/recommendations.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.svc.Recommend(c.Request.Context(), req.Input)
	if err != nil {
		respondError(c, "Failed to generate recommendations", err, http.StatusServiceUnavailable)
		return
	}

	c.JSON(http.StatusOK, result)
}

// History handles GET /api/v1/recommendations.
func (h *RecommendationHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Query parameter 'limit' must be an integer between 1 and 500",
			})
			return
		}
		limit = n
	}

	recs, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "Failed to list recommendations", err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"total":           len(recs),
	})
}
