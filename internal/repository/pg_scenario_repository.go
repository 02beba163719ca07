package repository

import (
	"context"
	"errors"
	"fmt"

	"scenario-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ ScenarioRepository = (*pgScenarioRepository)(nil)

type pgScenarioRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgScenarioRepository создает PostgreSQL-реализацию ScenarioRepository.
func NewPgScenarioRepository(db DBTX, logger *zap.Logger) ScenarioRepository {
	return &pgScenarioRepository{
		db:     db,
		logger: logger.Named("PgScenarioRepo"),
	}
}

// Create сохраняет новый сценарий.
func (r *pgScenarioRepository) Create(ctx context.Context, scenario *models.Scenario) error {
	query := `
        INSERT INTO scenarios (id, title, author_id, created_at)
        VALUES ($1, $2, $3, $4)
    `
	logFields := []zap.Field{zap.String("scenarioID", scenario.ID.String()), zap.String("authorID", scenario.AuthorID)}
	r.logger.Debug("Creating scenario", logFields...)

	_, err := r.db.Exec(ctx, query, scenario.ID, scenario.Title, scenario.AuthorID, scenario.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create scenario", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка создания сценария: %w", err)
	}
	r.logger.Info("Scenario created", logFields...)
	return nil
}

// GetByID возвращает сценарий с прикрепленными шагами.
func (r *pgScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	query := `
        SELECT id, title, author_id, created_at
        FROM scenarios
        WHERE id = $1
    `
	scenario := &models.Scenario{}
	r.logger.Debug("Getting scenario by ID", zap.String("scenarioID", id.String()))

	err := r.db.QueryRow(ctx, query, id).Scan(
		&scenario.ID, &scenario.Title, &scenario.AuthorID, &scenario.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Scenario not found", zap.String("scenarioID", id.String()))
			return nil, models.ErrScenarioNotFound
		}
		r.logger.Error("Failed to get scenario", zap.String("scenarioID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения сценария %s: %w", id, err)
	}

	steps, err := r.listSteps(ctx, id)
	if err != nil {
		return nil, err
	}
	scenario.Steps = steps
	return scenario, nil
}

// List возвращает все сценарии с шагами по возрастанию времени создания.
func (r *pgScenarioRepository) List(ctx context.Context) ([]models.Scenario, error) {
	query := `
        SELECT id, title, author_id, created_at
        FROM scenarios
        ORDER BY created_at ASC, id ASC
    `
	r.logger.Debug("Listing scenarios")

	var scenarios []models.Scenario
	if err := pgxscan.Select(ctx, r.db, &scenarios, query); err != nil {
		r.logger.Error("Failed to list scenarios", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка сценариев: %w", err)
	}

	// Шаги всех сценариев выбираются одним запросом и раскладываются по владельцам.
	stepsQuery := `
        SELECT id, scenario_id, content, created_at
        FROM steps
        ORDER BY created_at ASC, id ASC
    `
	var steps []models.Step
	if err := pgxscan.Select(ctx, r.db, &steps, stepsQuery); err != nil {
		r.logger.Error("Failed to list steps", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения шагов: %w", err)
	}

	byScenario := make(map[uuid.UUID][]models.Step, len(scenarios))
	for _, step := range steps {
		byScenario[step.ScenarioID] = append(byScenario[step.ScenarioID], step)
	}
	for i := range scenarios {
		attached := byScenario[scenarios[i].ID]
		if attached == nil {
			attached = []models.Step{}
		}
		scenarios[i].Steps = attached
	}

	r.logger.Debug("Scenarios listed", zap.Int("count", len(scenarios)))
	return scenarios, nil
}

// Exists проверяет наличие сценария.
func (r *pgScenarioRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM scenarios WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		r.logger.Error("Failed to check scenario existence", zap.String("scenarioID", id.String()), zap.Error(err))
		return false, fmt.Errorf("ошибка проверки сценария %s: %w", id, err)
	}
	return exists, nil
}

func (r *pgScenarioRepository) listSteps(ctx context.Context, scenarioID uuid.UUID) ([]models.Step, error) {
	query := `
        SELECT id, scenario_id, content, created_at
        FROM steps
        WHERE scenario_id = $1
        ORDER BY created_at ASC, id ASC
    `
	steps := []models.Step{}
	if err := pgxscan.Select(ctx, r.db, &steps, query, scenarioID); err != nil {
		r.logger.Error("Failed to list scenario steps", zap.String("scenarioID", scenarioID.String()), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения шагов сценария %s: %w", scenarioID, err)
	}
	return steps, nil
}
