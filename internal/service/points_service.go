package service

import (
	"context"
	"fmt"
	"time"

	"scenario-server/internal/models"
	"scenario-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PointsService реализует леджер очков: запись начислений и агрегаты.
type PointsService struct {
	points repository.PointsRepository
	steps  repository.StepRepository
	logger *zap.Logger
}

// NewPointsService создает новый PointsService.
func NewPointsService(
	points repository.PointsRepository,
	steps repository.StepRepository,
	logger *zap.Logger,
) *PointsService {
	return &PointsService{
		points: points,
		steps:  steps,
		logger: logger.Named("PointsService"),
	}
}

// Record добавляет запись в леджер. Знак amount не проверяется: леджер
// представляет и начисления, и списания.
func (s *PointsService) Record(ctx context.Context, userID string, txType models.TransactionType, amount int) error {
	tx := &models.PointTransaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      txType,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	return s.points.Create(ctx, tx)
}

// Total возвращает сумму всех начислений пользователя; 0 для пустого леджера.
func (s *PointsService) Total(ctx context.Context, userID string) (int, error) {
	return s.points.SumByUser(ctx, userID)
}

// Level возвращает уровень пользователя: floor(total / 100), не ниже нуля.
func (s *PointsService) Level(ctx context.Context, userID string) (int, error) {
	total, err := s.points.SumByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if total < 0 {
		return 0, nil
	}
	return total / models.PointsPerLevel, nil
}

// CompleteStep отмечает шаг выполненным: начисляет фиксированную награду и
// возвращает новый суммарный счет. Запись в леджер происходит только после
// успешной проверки существования шага.
func (s *PointsService) CompleteStep(ctx context.Context, userID, stepID string) (int, error) {
	if stepID == "" {
		return 0, fmt.Errorf("%w: stepId is required", models.ErrValidation)
	}

	id, err := uuid.Parse(stepID)
	if err != nil {
		// Невалидный идентификатор не может указывать на существующий шаг.
		return 0, models.ErrStepNotFound
	}

	exists, err := s.steps.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, models.ErrStepNotFound
	}

	if err := s.Record(ctx, userID, models.TransactionCompleteStep, models.RewardCompleteStep); err != nil {
		return 0, err
	}

	s.logger.Info("Step completed", zap.String("stepID", stepID), zap.String("userID", userID))
	return s.points.SumByUser(ctx, userID)
}

// CompleteAssessment начисляет награду за пройденную оценку и возвращает
// новый суммарный счет.
func (s *PointsService) CompleteAssessment(ctx context.Context, userID string) (int, error) {
	if err := s.Record(ctx, userID, models.TransactionAssessment, models.RewardAssessment); err != nil {
		return 0, err
	}

	s.logger.Info("Assessment completed", zap.String("userID", userID))
	return s.points.SumByUser(ctx, userID)
}
