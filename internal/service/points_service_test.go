package service_test

import (
	"context"
	"testing"

	"scenario-server/internal/models"
	"scenario-server/internal/repository/mocks"
	"scenario-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPointsService(points *mocks.PointsRepository, steps *mocks.StepRepository) *service.PointsService {
	return service.NewPointsService(points, steps, zap.NewNop())
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("appends ledger entry without amount validation", func(t *testing.T) {
		mockPoints := new(mocks.PointsRepository)
		svc := newPointsService(mockPoints, new(mocks.StepRepository))

		// Отрицательные суммы тоже представимы - леджер знаковый.
		for _, amount := range []int{5, -10, 0} {
			mockPoints.On("Create", ctx, mock.MatchedBy(func(tx *models.PointTransaction) bool {
				return tx.UserID == models.AnonymousUserID && tx.Amount == amount
			})).Return(nil).Once()

			err := svc.Record(ctx, models.AnonymousUserID, models.TransactionAIStep, amount)
			require.NoError(t, err)
		}
		mockPoints.AssertExpectations(t)
	})
}

func TestTotal(t *testing.T) {
	ctx := context.Background()

	t.Run("empty ledger sums to zero", func(t *testing.T) {
		mockPoints := new(mocks.PointsRepository)
		svc := newPointsService(mockPoints, new(mocks.StepRepository))

		mockPoints.On("SumByUser", ctx, models.AnonymousUserID).Return(0, nil).Once()

		total, err := svc.Total(ctx, models.AnonymousUserID)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})
}

func TestLevel(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		total int
		level int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{250, 2},
		{-50, 0},
	}

	for _, tc := range cases {
		mockPoints := new(mocks.PointsRepository)
		svc := newPointsService(mockPoints, new(mocks.StepRepository))

		mockPoints.On("SumByUser", ctx, models.AnonymousUserID).Return(tc.total, nil).Once()

		level, err := svc.Level(ctx, models.AnonymousUserID)
		require.NoError(t, err)
		assert.Equalf(t, tc.level, level, "total=%d", tc.total)
	}
}

func TestCompleteStep(t *testing.T) {
	ctx := context.Background()

	t.Run("records reward and returns new total", func(t *testing.T) {
		mockPoints := new(mocks.PointsRepository)
		mockSteps := new(mocks.StepRepository)
		svc := newPointsService(mockPoints, mockSteps)

		stepID := uuid.New()
		mockSteps.On("Exists", ctx, stepID).Return(true, nil).Once()
		mockPoints.On("Create", ctx, mock.MatchedBy(func(tx *models.PointTransaction) bool {
			return tx.Type == models.TransactionCompleteStep && tx.Amount == models.RewardCompleteStep
		})).Return(nil).Once()
		mockPoints.On("SumByUser", ctx, models.AnonymousUserID).Return(10, nil).Once()

		total, err := svc.CompleteStep(ctx, models.AnonymousUserID, stepID.String())
		require.NoError(t, err)
		assert.Equal(t, 10, total)
		mockPoints.AssertExpectations(t)
	})

	t.Run("rejects empty stepId", func(t *testing.T) {
		mockPoints := new(mocks.PointsRepository)
		svc := newPointsService(mockPoints, new(mocks.StepRepository))

		_, err := svc.CompleteStep(ctx, models.AnonymousUserID, "")
		assert.ErrorIs(t, err, models.ErrValidation)
		mockPoints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing step leaves ledger untouched", func(t *testing.T) {
		mockPoints := new(mocks.PointsRepository)
		mockSteps := new(mocks.StepRepository)
		svc := newPointsService(mockPoints, mockSteps)

		stepID := uuid.New()
		mockSteps.On("Exists", ctx, stepID).Return(false, nil).Once()

		_, err := svc.CompleteStep(ctx, models.AnonymousUserID, stepID.String())
		assert.ErrorIs(t, err, models.ErrStepNotFound)
		mockPoints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed stepId maps to not found", func(t *testing.T) {
		mockPoints := new(mocks.PointsRepository)
		mockSteps := new(mocks.StepRepository)
		svc := newPointsService(mockPoints, mockSteps)

		_, err := svc.CompleteStep(ctx, models.AnonymousUserID, "not-a-uuid")
		assert.ErrorIs(t, err, models.ErrStepNotFound)
		mockSteps.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})
}

func TestCompleteAssessment(t *testing.T) {
	ctx := context.Background()

	t.Run("always records fixed reward", func(t *testing.T) {
		mockPoints := new(mocks.PointsRepository)
		svc := newPointsService(mockPoints, new(mocks.StepRepository))

		mockPoints.On("Create", ctx, mock.MatchedBy(func(tx *models.PointTransaction) bool {
			return tx.Type == models.TransactionAssessment && tx.Amount == models.RewardAssessment
		})).Return(nil).Once()
		mockPoints.On("SumByUser", ctx, models.AnonymousUserID).Return(30, nil).Once()

		total, err := svc.CompleteAssessment(ctx, models.AnonymousUserID)
		require.NoError(t, err)
		assert.Equal(t, 30, total)
		mockPoints.AssertExpectations(t)
	})
}
