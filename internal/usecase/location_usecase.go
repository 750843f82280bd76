package usecase

import (
	"context"
	"math"

	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"github.com/restaurant-locator/internal/pkg/utils"
	"github.com/restaurant-locator/internal/usecase/dto"
	"go.uber.org/zap"
)

// PlacePersister сохраняет найденные места. Ошибка сохранения
// не влияет на ответ клиенту.
type PlacePersister interface {
	Persist(ctx context.Context, places []*domain.Place) error
}

type LocationUseCase struct {
	gateway   repository.PlacesGateway
	persister PlacePersister
	logger    *zap.Logger
}

func NewLocationUseCase(
	gateway repository.PlacesGateway,
	persister PlacePersister,
	logger *zap.Logger,
) *LocationUseCase {
	return &LocationUseCase{
		gateway:   gateway,
		persister: persister,
		logger:    logger,
	}
}

// LookupNearby ищет рестораны рядом с точкой, нормализует и сохраняет их
func (uc *LocationUseCase) LookupNearby(ctx context.Context, req dto.LocationLookupRequest) (*dto.LocationLookupResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	records, err := uc.gateway.SearchNearby(ctx, req.Lat, req.Lng)
	if err != nil {
		if !errors.Is(err, errors.ErrInvalidPayload) {
			uc.logger.Error("Places API request failed",
				zap.Float64("lat", req.Lat),
				zap.Float64("lng", req.Lng),
				zap.Error(err))
			if errors.Is(err, errors.ErrGateway) {
				return nil, err
			}
			return nil, errors.ErrGateway.WithCause(err)
		}
		// Нераспознанный ответ считаем пустым результатом
		uc.logger.Warn("Unparseable places payload, returning no results", zap.Error(err))
		records = nil
	}

	places, skipped := NormalizePlaces(records)
	if skipped > 0 {
		uc.logger.Warn("Skipped malformed place records", zap.Int("skipped", skipped))
	}

	for _, place := range places {
		if place.Latitude != nil && place.Longitude != nil {
			meters := utils.HaversineDistance(req.Lat, req.Lng, *place.Latitude, *place.Longitude) * 1000
			place.Distance = math.Round(meters)
		}
	}

	if len(places) > 0 {
		if err := uc.persister.Persist(ctx, places); err != nil {
			uc.logger.Error("Failed to persist places", zap.Int("count", len(places)), zap.Error(err))
		}
	}

	return &dto.LocationLookupResponse{
		NearbyRestaurants: places,
	}, nil
}
