package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) FindBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, subject_id, email, created_at, updated_at
		FROM users
		WHERE subject_id = $1
	`, subjectID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to find user", zap.String("subject_id", subjectID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (subject_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.SubjectID, user.Email, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicate.WithCause(err)
		}
		r.logger.Error("Failed to create user", zap.String("subject_id", user.SubjectID), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET email = $2, updated_at = $3
		WHERE id = $1
	`, user.ID, user.Email, user.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update user", zap.Int64("id", user.ID), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}
