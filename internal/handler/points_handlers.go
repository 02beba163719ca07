package handler

import (
	"net/http"

	"scenario-server/internal/models"

	"github.com/gin-gonic/gin"
)

// completeStep обрабатывает POST /api/scenarios/:id/complete-step.
// Шаг ищется по stepId из тела запроса, параметр :id сохранен для
// совместимости формы маршрута.
func (h *APIHandler) completeStep(c *gin.Context) {
	var req completeStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Missing stepId"})
		return
	}
	if req.StepID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Missing stepId"})
		return
	}

	points, err := h.points.CompleteStep(c.Request.Context(), models.AnonymousUserID, req.StepID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pointsResponse{Points: points})
}

// completeAssessment обрабатывает POST /api/assessment-complete.
func (h *APIHandler) completeAssessment(c *gin.Context) {
	points, err := h.points.CompleteAssessment(c.Request.Context(), models.AnonymousUserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pointsResponse{Points: points})
}

// getPoints обрабатывает GET /api/points.
func (h *APIHandler) getPoints(c *gin.Context) {
	ctx := c.Request.Context()

	points, err := h.points.Total(ctx, models.AnonymousUserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	level, err := h.points.Level(ctx, models.AnonymousUserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pointsLevelResponse{Points: points, Level: level})
}

// generateIDP обрабатывает POST /api/idp.
func (h *APIHandler) generateIDP(c *gin.Context) {
	idp, err := h.generator.GenerateIDP(c.Request.Context(), models.AnonymousUserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, idpResponse{IDP: idp})
}
