package repository

import (
	"context"
	"encoding/json"
)

// PlacesGateway - внешний Places API
type PlacesGateway interface {
	// SearchNearby возвращает сырые записи ресторанов вокруг точки.
	// Ошибки: errors.ErrGateway, errors.ErrInvalidPayload
	SearchNearby(ctx context.Context, lat, lng float64) ([]json.RawMessage, error)
}
