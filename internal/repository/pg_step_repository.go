package repository

import (
	"context"
	"fmt"

	"scenario-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check
var _ StepRepository = (*pgStepRepository)(nil)

type pgStepRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgStepRepository создает PostgreSQL-реализацию StepRepository.
func NewPgStepRepository(db DBTX, logger *zap.Logger) StepRepository {
	return &pgStepRepository{
		db:     db,
		logger: logger.Named("PgStepRepo"),
	}
}

// Create сохраняет новый шаг сценария.
func (r *pgStepRepository) Create(ctx context.Context, step *models.Step) error {
	query := `
        INSERT INTO steps (id, scenario_id, content, created_at)
        VALUES ($1, $2, $3, $4)
    `
	logFields := []zap.Field{zap.String("stepID", step.ID.String()), zap.String("scenarioID", step.ScenarioID.String())}
	r.logger.Debug("Creating step", logFields...)

	_, err := r.db.Exec(ctx, query, step.ID, step.ScenarioID, step.Content, step.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create step", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка создания шага: %w", err)
	}
	r.logger.Info("Step created", logFields...)
	return nil
}

// Exists проверяет наличие шага.
func (r *pgStepRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM steps WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		r.logger.Error("Failed to check step existence", zap.String("stepID", id.String()), zap.Error(err))
		return false, fmt.Errorf("ошибка проверки шага %s: %w", id, err)
	}
	return exists, nil
}

// ListByScenario возвращает шаги сценария по возрастанию времени создания.
func (r *pgStepRepository) ListByScenario(ctx context.Context, scenarioID uuid.UUID) ([]models.Step, error) {
	query := `
        SELECT id, scenario_id, content, created_at
        FROM steps
        WHERE scenario_id = $1
        ORDER BY created_at ASC, id ASC
    `
	steps := []models.Step{}
	if err := pgxscan.Select(ctx, r.db, &steps, query, scenarioID); err != nil {
		r.logger.Error("Failed to list steps", zap.String("scenarioID", scenarioID.String()), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения шагов сценария %s: %w", scenarioID, err)
	}
	return steps, nil
}

// CountByAuthor считает шаги во всех сценариях автора.
func (r *pgStepRepository) CountByAuthor(ctx context.Context, userID string) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM steps s
        JOIN scenarios sc ON sc.id = s.scenario_id
        WHERE sc.author_id = $1
    `
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.logger.Error("Failed to count steps by author", zap.String("userID", userID), zap.Error(err))
		return 0, fmt.Errorf("ошибка подсчета шагов пользователя %s: %w", userID, err)
	}
	return count, nil
}
