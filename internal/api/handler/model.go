package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/cobuy/internal/engine"
	"github.com/timmy/cobuy/internal/service"
)

// ModelHandler handles training, dataset upload and model inspection.
type ModelHandler struct {
	svc *service.RecommendationService
}

// NewModelHandler creates a new model handler.
func NewModelHandler(svc *service.RecommendationService) *ModelHandler {
	return &ModelHandler{svc: svc}
}

// UploadRequest is the body of POST /api/v1/upload-csv.
type UploadRequest struct {
	CSVData string `json:"csv_data" binding:"required"`
}

// Train handles GET /api/v1/train.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *ModelHandler) Train(c *gin.Context) {
	products, err := h.svc.Train(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to train model", err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Model trained",
		"products": products,
	})
}

// UploadCSV handles POST /api/v1/upload-csv.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *ModelHandler) UploadCSV(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Field 'csv_data' is required",
		})
		return
	}

	if err := engine.ValidateHeader(req.CSVData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid CSV: must start with '" + engine.Header + "'",
		})
		return
	}

	products, err := h.svc.UploadDataset(c.Request.Context(), req.CSVData)
	if err != nil {
		respondError(c, "Failed to process CSV data", err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "CSV data processed and model trained",
		"products": products,
	})
}

// Products handles GET /api/v1/products.
func (h *ModelHandler) Products(c *gin.Context) {
	products, err := h.svc.Products(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to list products", err, http.StatusConflict)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// Stats handles GET /api/v1/stats.
func (h *ModelHandler) Stats(c *gin.Context) {
	status, err := h.svc.Status(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to get stats", err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, status)
}
