package handler

import (
	"errors"
	"net/http"

	"scenario-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError транслирует ошибки сервисного слоя в HTTP-ответы.
// Ошибки провайдера сюда не попадают: генератор гасит их fallback-ом.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, models.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, models.ErrScenarioNotFound):
		statusCode = http.StatusNotFound
		message = "Scenario not found"
	case errors.Is(err, models.ErrStepNotFound):
		statusCode = http.StatusNotFound
		message = "Step not found"
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Not found"
	default:
		zap.L().Error("Unhandled internal error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		message = err.Error()
	}

	c.AbortWithStatusJSON(statusCode, errorResponse{Error: message})
}
