package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scenario-server/internal/models"
	"scenario-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScenarioService реализует операции над сценариями и их шагами.
type ScenarioService struct {
	users     repository.UserRepository
	scenarios repository.ScenarioRepository
	steps     repository.StepRepository
	logger    *zap.Logger
}

// NewScenarioService создает новый ScenarioService.
func NewScenarioService(
	users repository.UserRepository,
	scenarios repository.ScenarioRepository,
	steps repository.StepRepository,
	logger *zap.Logger,
) *ScenarioService {
	return &ScenarioService{
		users:     users,
		scenarios: scenarios,
		steps:     steps,
		logger:    logger.Named("ScenarioService"),
	}
}

// CreateScenario создает сценарий от имени userID. Автор создается лениво,
// одним атомарным upsert-ом, поэтому конкурентные вызовы не порождают дублей.
func (s *ScenarioService) CreateScenario(ctx context.Context, userID, title string) (*models.Scenario, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	author := models.AnonymousUser()
	author.ID = userID
	if err := s.users.Upsert(ctx, author); err != nil {
		return nil, err
	}

	scenario := &models.Scenario{
		ID:        uuid.New(),
		Title:     title,
		AuthorID:  userID,
		CreatedAt: time.Now().UTC(),
		Steps:     []models.Step{},
	}
	if err := s.scenarios.Create(ctx, scenario); err != nil {
		return nil, err
	}

	s.logger.Info("Scenario created",
		zap.String("scenarioID", scenario.ID.String()),
		zap.String("userID", userID),
	)
	return scenario, nil
}

// ListScenarios возвращает все сценарии с шагами по возрастанию времени создания.
func (s *ScenarioService) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	return s.scenarios.List(ctx)
}

// GetScenario возвращает сценарий с шагами или models.ErrScenarioNotFound.
func (s *ScenarioService) GetScenario(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	return s.scenarios.GetByID(ctx, id)
}

// AddStep добавляет шаг, присланный пользователем. Пустой content отклоняется
// до каких-либо обращений к хранилищу.
func (s *ScenarioService) AddStep(ctx context.Context, scenarioID uuid.UUID, content string) (*models.Step, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", models.ErrValidation)
	}
	return s.appendStep(ctx, scenarioID, content)
}

// AddGeneratedStep добавляет шаг, созданный генератором. Точка входа отдельная:
// валидация содержимого здесь не применяется, источник текста - AI либо
// непустой fallback.
func (s *ScenarioService) AddGeneratedStep(ctx context.Context, scenarioID uuid.UUID, content string) (*models.Step, error) {
	return s.appendStep(ctx, scenarioID, content)
}

func (s *ScenarioService) appendStep(ctx context.Context, scenarioID uuid.UUID, content string) (*models.Step, error) {
	exists, err := s.scenarios.Exists(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrScenarioNotFound
	}

	step := &models.Step{
		ID:         uuid.New(),
		ScenarioID: scenarioID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.steps.Create(ctx, step); err != nil {
		return nil, err
	}

	s.logger.Info("Step added",
		zap.String("stepID", step.ID.String()),
		zap.String("scenarioID", scenarioID.String()),
	)
	return step, nil
}
