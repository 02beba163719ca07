package repository

import (
	"context"

	"scenario-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX - абстракция над pgxpool.Pool и pgx.Tx, чтобы репозитории могли
// работать как с пулом, так и внутри транзакции.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository управляет записями пользователей.
type UserRepository interface {
	// Upsert создает пользователя, если его еще нет. Операция атомарна:
	// конкурентные вызовы с одним id не приводят к дублям и не возвращают ошибку.
	Upsert(ctx context.Context, user *models.User) error
}

// ScenarioRepository управляет сценариями.
type ScenarioRepository interface {
	Create(ctx context.Context, scenario *models.Scenario) error
	// GetByID возвращает сценарий с шагами (по возрастанию created_at)
	// или models.ErrScenarioNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error)
	// List возвращает все сценарии с шагами, по возрастанию created_at.
	List(ctx context.Context) ([]models.Scenario, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// StepRepository управляет шагами сценариев.
type StepRepository interface {
	Create(ctx context.Context, step *models.Step) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// ListByScenario возвращает шаги сценария по возрастанию created_at.
	ListByScenario(ctx context.Context, scenarioID uuid.UUID) ([]models.Step, error)
	// CountByAuthor считает шаги во всех сценариях данного автора.
	CountByAuthor(ctx context.Context, userID string) (int, error)
}

// PointsRepository управляет леджером очков.
type PointsRepository interface {
	Create(ctx context.Context, tx *models.PointTransaction) error
	// SumByUser возвращает сумму начислений пользователя; 0, если записей нет.
	SumByUser(ctx context.Context, userID string) (int, error)
}
