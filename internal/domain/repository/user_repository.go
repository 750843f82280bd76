package repository

import (
	"context"

	"github.com/restaurant-locator/internal/domain"
)

// UserRepository определяет методы для хранения пользователей
type UserRepository interface {
	// FindBySubjectID возвращает пользователя или errors.ErrUserNotFound
	FindBySubjectID(ctx context.Context, subjectID string) (*domain.User, error)

	// Create заполняет ID; повторный subjectID отклоняется с errors.ErrDuplicate
	Create(ctx context.Context, user *domain.User) error

	// Update обновляет email и updated_at
	Update(ctx context.Context, user *domain.User) error
}
