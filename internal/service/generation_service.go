package service

import (
	"context"
	"fmt"
	"strings"

	"scenario-server/internal/models"
	"scenario-server/internal/repository"
	"scenario-server/pkg/ai"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompletionProvider - внешний сервис генерации текста по промпту.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

const (
	stepMaxTokens = 100
	idpMaxTokens  = 200

	// stepFallback подставляется вместо ответа провайдера при любой его ошибке.
	stepFallback = "Тестовый шаг (AI-заглушка)."
)

// idpFallback - фиксированный план развития на случай недоступности провайдера.
var idpFallback = []string{
	"Практикуйте активное слушание.",
	"Развивайте тайм-менеджмент.",
	"Улучшайте эмоциональный интеллект.",
}

// GenerationService реализует AI-генерацию: следующий шаг сценария и
// индивидуальный план развития (IDP). Ошибка провайдера никогда не доходит
// до вызывающей стороны - вместо ответа используется фиксированный fallback.
type GenerationService struct {
	scenarios *ScenarioService
	points    *PointsService
	steps     repository.StepRepository
	provider  CompletionProvider
	logger    *zap.Logger
}

// NewGenerationService создает новый GenerationService.
func NewGenerationService(
	scenarios *ScenarioService,
	points *PointsService,
	steps repository.StepRepository,
	provider CompletionProvider,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		scenarios: scenarios,
		points:    points,
		steps:     steps,
		provider:  provider,
		logger:    logger.Named("GenerationService"),
	}
}

// GenerateNextStep генерирует следующий шаг сценария, сохраняет его и
// начисляет награду AI_STEP. Возвращает models.ErrScenarioNotFound, если
// сценарий не существует.
func (s *GenerationService) GenerateNextStep(ctx context.Context, userID string, scenarioID uuid.UUID) (*models.Step, error) {
	scenario, err := s.scenarios.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	prompt := buildStepPrompt(scenario)

	content := stepFallback
	if text, err := s.provider.Complete(ctx, prompt, stepMaxTokens); err != nil {
		s.logger.Warn("Completion provider failed, using fallback step",
			zap.String("scenarioID", scenarioID.String()),
			zap.Error(err),
		)
	} else {
		content = strings.TrimSpace(text)
	}

	step, err := s.scenarios.AddGeneratedStep(ctx, scenarioID, content)
	if err != nil {
		return nil, err
	}

	if err := s.points.Record(ctx, userID, models.TransactionAIStep, models.RewardAIStep); err != nil {
		return nil, err
	}

	return step, nil
}

// GenerateIDP строит индивидуальный план развития по текущему счету и числу
// шагов пользователя. В леджер и хранилище ничего не пишет.
func (s *GenerationService) GenerateIDP(ctx context.Context, userID string) ([]string, error) {
	total, err := s.points.Total(ctx, userID)
	if err != nil {
		return nil, err
	}

	stepCount, err := s.steps.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("У участника %d очков и %d шагов. Дай 3 рекомендации.", total, stepCount)

	text, err := s.provider.Complete(ctx, prompt, idpMaxTokens)
	if err != nil {
		s.logger.Warn("Completion provider failed, using fallback IDP",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return idpFallback, nil
	}

	return ai.ParseRecommendations(text), nil
}

// buildStepPrompt формирует промпт из заголовка сценария и нумерованной
// (с единицы) истории его шагов.
func buildStepPrompt(scenario *models.Scenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Сценарий %q. Предыдущие шаги:\n", scenario.Title)
	for i, step := range scenario.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step.Content)
	}
	b.WriteString("Сгенерируй следующий шаг одним предложением.")
	return b.String()
}
