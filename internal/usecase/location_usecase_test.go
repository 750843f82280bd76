package usecase_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/pkg/errors"
	"github.com/restaurant-locator/internal/usecase"
	"github.com/restaurant-locator/internal/usecase/dto"
)

func rawRecords(records ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		out = append(out, json.RawMessage(r))
	}
	return out
}

func TestLocationUseCase_LookupNearby(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	london := dto.LocationLookupRequest{Lat: 51.5074, Lng: -0.1278}

	t.Run("returns normalized places and persists them", func(t *testing.T) {
		gateway := &MockPlacesGateway{}
		persister := &MockPlacePersister{}
		uc := usecase.NewLocationUseCase(gateway, persister, logger)

		gateway.On("SearchNearby", ctx, 51.5074, -0.1278).Return(rawRecords(
			`{"id":"a","displayName":{"text":"A"},"location":{"latitude":51.5074,"longitude":-0.1278}}`,
			`{"id":"b","displayName":{"text":"B"},"location":{"latitude":51.5084,"longitude":-0.1278}}`,
		), nil)
		persister.On("Persist", ctx, mock.MatchedBy(func(places []*domain.Place) bool {
			return len(places) == 2
		})).Return(nil)

		resp, err := uc.LookupNearby(ctx, london)

		require.NoError(t, err)
		require.Len(t, resp.NearbyRestaurants, 2)
		assert.Equal(t, "a", resp.NearbyRestaurants[0].ExternalPlaceID)
		assert.Equal(t, 0.0, resp.NearbyRestaurants[0].Distance)
		// 0.001 градуса широты ~ 111 м
		assert.InDelta(t, 111, resp.NearbyRestaurants[1].Distance, 1)
		gateway.AssertExpectations(t)
		persister.AssertExpectations(t)
	})

	t.Run("persistence failure does not affect response", func(t *testing.T) {
		gateway := &MockPlacesGateway{}
		persister := &MockPlacePersister{}
		uc := usecase.NewLocationUseCase(gateway, persister, logger)

		gateway.On("SearchNearby", ctx, 51.5074, -0.1278).Return(rawRecords(`{"id":"a"}`, `{}`), nil)
		persister.On("Persist", ctx, mock.Anything).Return(stderrors.New("redis down"))

		resp, err := uc.LookupNearby(ctx, london)

		require.NoError(t, err)
		assert.Len(t, resp.NearbyRestaurants, 2)
	})

	t.Run("record without identifier is still returned", func(t *testing.T) {
		gateway := &MockPlacesGateway{}
		repo := &MockPlaceRepository{}
		uc := usecase.NewLocationUseCase(gateway, usecase.NewPlaceReconciler(repo, logger, clock), logger)

		gateway.On("SearchNearby", ctx, 51.5074, -0.1278).Return(rawRecords(
			`{"id":"a"}`, `{"displayName":{"text":"anonymous"}}`, `{"id":"c"}`,
		), nil)
		repo.On("FindIDByExternalID", ctx, mock.Anything).Return(int64(0), errors.ErrPlaceNotFound)
		repo.On("Create", ctx, mock.Anything, fixedNow).Return(int64(1), nil)

		resp, err := uc.LookupNearby(ctx, london)

		require.NoError(t, err)
		assert.Len(t, resp.NearbyRestaurants, 3)
		repo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("invalid coordinates never reach gateway", func(t *testing.T) {
		gateway := &MockPlacesGateway{}
		uc := usecase.NewLocationUseCase(gateway, &MockPlacePersister{}, logger)

		for _, req := range []dto.LocationLookupRequest{
			{Lat: math.NaN(), Lng: 0},
			{Lat: 0, Lng: math.NaN()},
			{Lat: 91, Lng: 0},
			{Lat: 0, Lng: -181},
		} {
			resp, err := uc.LookupNearby(ctx, req)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, errors.ErrInvalidCoordinates))
		}
		gateway.AssertNotCalled(t, "SearchNearby", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero coordinates are valid", func(t *testing.T) {
		gateway := &MockPlacesGateway{}
		uc := usecase.NewLocationUseCase(gateway, &MockPlacePersister{}, logger)

		gateway.On("SearchNearby", ctx, 0.0, 0.0).Return(rawRecords(), nil)

		resp, err := uc.LookupNearby(ctx, dto.LocationLookupRequest{})

		require.NoError(t, err)
		assert.NotNil(t, resp.NearbyRestaurants)
		assert.Empty(t, resp.NearbyRestaurants)
	})

	t.Run("gateway failure", func(t *testing.T) {
		gateway := &MockPlacesGateway{}
		persister := &MockPlacePersister{}
		uc := usecase.NewLocationUseCase(gateway, persister, logger)

		gateway.On("SearchNearby", ctx, 51.5074, -0.1278).
			Return(nil, errors.ErrGateway.WithCause(stderrors.New("status 500")))

		resp, err := uc.LookupNearby(ctx, london)

		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, errors.ErrGateway))
		persister.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})

	t.Run("unknown gateway error is wrapped", func(t *testing.T) {
		gateway := &MockPlacesGateway{}
		uc := usecase.NewLocationUseCase(gateway, &MockPlacePersister{}, logger)

		gateway.On("SearchNearby", ctx, 51.5074, -0.1278).Return(nil, context.DeadlineExceeded)

		_, err := uc.LookupNearby(ctx, london)

		assert.True(t, errors.Is(err, errors.ErrGateway))
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("unparseable payload is treated as empty", func(t *testing.T) {
		gateway := &MockPlacesGateway{}
		persister := &MockPlacePersister{}
		uc := usecase.NewLocationUseCase(gateway, persister, logger)

		gateway.On("SearchNearby", ctx, 51.5074, -0.1278).Return(nil, errors.ErrInvalidPayload)

		resp, err := uc.LookupNearby(ctx, london)

		require.NoError(t, err)
		assert.Empty(t, resp.NearbyRestaurants)
		persister.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})
}

func TestStreamPersister_Persist(t *testing.T) {
	ctx := context.Background()
	places := []*domain.Place{testPlace("a"), testPlace("b")}

	t.Run("publishes batch event", func(t *testing.T) {
		streamRepo := &MockStreamRepository{}
		p := usecase.NewStreamPersister(streamRepo, zap.NewNop(), clock)

		streamRepo.On("PublishToStream", ctx, domain.StreamPlacesIngest, mock.MatchedBy(func(e domain.PlacesIngestEvent) bool {
			return len(e.Places) == 2 && e.RequestedAt.Equal(fixedNow) && e.BatchID.String() != ""
		})).Return(nil)

		require.NoError(t, p.Persist(ctx, places))
		streamRepo.AssertExpectations(t)
	})

	t.Run("publish failure", func(t *testing.T) {
		streamRepo := &MockStreamRepository{}
		p := usecase.NewStreamPersister(streamRepo, zap.NewNop(), clock)

		streamRepo.On("PublishToStream", ctx, domain.StreamPlacesIngest, mock.Anything).Return(stderrors.New("READONLY"))

		err := p.Persist(ctx, places)
		assert.ErrorContains(t, err, "READONLY")
	})
}
