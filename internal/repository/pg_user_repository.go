package repository

import (
	"context"
	"fmt"

	"scenario-server/internal/models"

	"go.uber.org/zap"
)

// Compile-time check
var _ UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgUserRepository создает PostgreSQL-реализацию UserRepository.
func NewPgUserRepository(db DBTX, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

// Upsert создает пользователя, если его еще нет.
// ON CONFLICT DO NOTHING выполняет проверку и вставку одним атомарным
// оператором, отдельной проверки существования нет.
func (r *pgUserRepository) Upsert(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users (id, email, password, role)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO NOTHING
    `
	r.logger.Debug("Upserting user", zap.String("userID", user.ID))

	tag, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Password, user.Role)
	if err != nil {
		r.logger.Error("Failed to upsert user", zap.String("userID", user.ID), zap.Error(err))
		return fmt.Errorf("ошибка создания пользователя %s: %w", user.ID, err)
	}

	if tag.RowsAffected() > 0 {
		r.logger.Info("User created", zap.String("userID", user.ID))
	}
	return nil
}
