package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/cobuy/internal/engine"
	"github.com/timmy/cobuy/internal/logger"
)

// respondError maps engine errors to a status code and writes {"error": ...}.
// notTrainedStatus lets each endpoint choose how an untrained model is reported.
func respondError(c *gin.Context, prefix string, err error, notTrainedStatus int) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrMalformedInput), errors.Is(err, engine.ErrEmptyInput):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrNotTrained):
		status = notTrainedStatus
	}

	if status >= http.StatusInternalServerError {
		logger.CtxError(c.Request.Context(), "%s: %v", prefix, err)
	}

	c.JSON(status, gin.H{
		"error": prefix + ": " + err.Error(),
	})
}
