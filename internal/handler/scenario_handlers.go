package handler

import (
	"net/http"

	"scenario-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// createScenario обрабатывает POST /api/scenarios.
func (h *APIHandler) createScenario(c *gin.Context) {
	var req createScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Missing title"})
		return
	}
	if req.Title == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Missing title"})
		return
	}

	scenario, err := h.scenarios.CreateScenario(c.Request.Context(), models.AnonymousUserID, req.Title)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scenarioResponse{Scenario: scenario})
}

// listScenarios обрабатывает GET /api/scenarios.
func (h *APIHandler) listScenarios(c *gin.Context) {
	scenarios, err := h.scenarios.ListScenarios(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scenarioListResponse{Scenarios: scenarios})
}

// getScenario обрабатывает GET /api/scenarios/:id.
func (h *APIHandler) getScenario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleServiceError(c, models.ErrScenarioNotFound)
		return
	}

	scenario, err := h.scenarios.GetScenario(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scenarioResponse{Scenario: scenario})
}

// addStep обрабатывает POST /api/scenarios/:id/steps.
func (h *APIHandler) addStep(c *gin.Context) {
	var req addStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Missing content"})
		return
	}
	if req.Content == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Missing content"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleServiceError(c, models.ErrScenarioNotFound)
		return
	}

	step, err := h.scenarios.AddStep(c.Request.Context(), id, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stepResponse{Step: step})
}

// generateStep обрабатывает POST /api/scenarios/:id/generate-step.
func (h *APIHandler) generateStep(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleServiceError(c, models.ErrScenarioNotFound)
		return
	}

	step, err := h.generator.GenerateNextStep(c.Request.Context(), models.AnonymousUserID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stepResponse{Step: step})
}
