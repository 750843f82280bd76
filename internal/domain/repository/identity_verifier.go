package repository

import (
	"context"

	"github.com/restaurant-locator/internal/domain"
)

// IdentityVerifier проверяет bearer токен провайдера идентификации
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}
