package repository

import (
	"context"
	"fmt"

	"scenario-server/internal/models"

	"go.uber.org/zap"
)

// Compile-time check
var _ PointsRepository = (*pgPointsRepository)(nil)

type pgPointsRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgPointsRepository создает PostgreSQL-реализацию PointsRepository.
func NewPgPointsRepository(db DBTX, logger *zap.Logger) PointsRepository {
	return &pgPointsRepository{
		db:     db,
		logger: logger.Named("PgPointsRepo"),
	}
}

// Create добавляет запись в леджер. Записи неизменяемы, UPDATE/DELETE по
// этой таблице не существует.
func (r *pgPointsRepository) Create(ctx context.Context, tx *models.PointTransaction) error {
	query := `
        INSERT INTO point_transactions (id, user_id, type, amount, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	logFields := []zap.Field{
		zap.String("userID", tx.UserID),
		zap.String("type", string(tx.Type)),
		zap.Int("amount", tx.Amount),
	}
	r.logger.Debug("Recording point transaction", logFields...)

	_, err := r.db.Exec(ctx, query, tx.ID, tx.UserID, tx.Type, tx.Amount, tx.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to record point transaction", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка записи в леджер: %w", err)
	}
	r.logger.Info("Point transaction recorded", logFields...)
	return nil
}

// SumByUser возвращает сумму всех начислений пользователя.
func (r *pgPointsRepository) SumByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM point_transactions WHERE user_id = $1`
	var total int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		r.logger.Error("Failed to sum point transactions", zap.String("userID", userID), zap.Error(err))
		return 0, fmt.Errorf("ошибка подсчета очков пользователя %s: %w", userID, err)
	}
	return total, nil
}
