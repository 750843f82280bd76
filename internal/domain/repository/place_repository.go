package repository

import (
	"context"
	"time"

	"github.com/restaurant-locator/internal/domain"
)

// PlaceRepository определяет методы для хранения мест
type PlaceRepository interface {
	// FindIDByExternalID возвращает ID места по внешнему идентификатору
	// или errors.ErrPlaceNotFound
	FindIDByExternalID(ctx context.Context, externalID string) (int64, error)

	// Create создаёт место вместе с отзывами и фото в одной транзакции.
	// Повторный externalID отклоняется с errors.ErrDuplicate
	Create(ctx context.Context, place *domain.Place, now time.Time) (int64, error)

	// Update обновляет только скалярные поля и updated_at; отзывы и фото не трогает
	Update(ctx context.Context, id int64, place *domain.Place, now time.Time) error

	// GetByExternalID возвращает сохранённое место с отзывами и фото
	GetByExternalID(ctx context.Context, externalID string) (*domain.PlaceRecord, error)
}
