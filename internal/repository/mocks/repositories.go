package mocks

import (
	"context"

	"scenario-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Mock ScenarioRepository
type ScenarioRepository struct {
	mock.Mock
}

func (m *ScenarioRepository) Create(ctx context.Context, scenario *models.Scenario) error {
	args := m.Called(ctx, scenario)
	return args.Error(0)
}

func (m *ScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	args := m.Called(ctx, id)
	scenario, _ := args.Get(0).(*models.Scenario)
	return scenario, args.Error(1)
}

func (m *ScenarioRepository) List(ctx context.Context) ([]models.Scenario, error) {
	args := m.Called(ctx)
	scenarios, _ := args.Get(0).([]models.Scenario)
	return scenarios, args.Error(1)
}

func (m *ScenarioRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Mock StepRepository
type StepRepository struct {
	mock.Mock
}

func (m *StepRepository) Create(ctx context.Context, step *models.Step) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *StepRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *StepRepository) ListByScenario(ctx context.Context, scenarioID uuid.UUID) ([]models.Step, error) {
	args := m.Called(ctx, scenarioID)
	steps, _ := args.Get(0).([]models.Step)
	return steps, args.Error(1)
}

func (m *StepRepository) CountByAuthor(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// Mock PointsRepository
type PointsRepository struct {
	mock.Mock
}

func (m *PointsRepository) Create(ctx context.Context, tx *models.PointTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *PointsRepository) SumByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
