package handler

import (
	"net/http"

	"scenario-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler объединяет HTTP-обработчики сервера сценариев.
type APIHandler struct {
	scenarios *service.ScenarioService
	points    *service.PointsService
	generator *service.GenerationService
	logger    *zap.Logger
}

// NewAPIHandler создает новый APIHandler.
func NewAPIHandler(
	scenarios *service.ScenarioService,
	points *service.PointsService,
	generator *service.GenerationService,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		scenarios: scenarios,
		points:    points,
		generator: generator,
		logger:    logger.Named("APIHandler"),
	}
}

// RegisterRoutes регистрирует маршруты API.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.liveness)
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.POST("/scenarios", h.createScenario)
		api.GET("/scenarios", h.listScenarios)
		api.GET("/scenarios/:id", h.getScenario)
		api.POST("/scenarios/:id/steps", h.addStep)
		api.POST("/scenarios/:id/generate-step", h.generateStep)
		api.POST("/scenarios/:id/complete-step", h.completeStep)
		api.POST("/assessment-complete", h.completeAssessment)
		api.GET("/points", h.getPoints)
		api.POST("/idp", h.generateIDP)
	}
}

func (h *APIHandler) liveness(c *gin.Context) {
	c.String(http.StatusOK, "Scenario Trainer API is running")
}

func (h *APIHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
