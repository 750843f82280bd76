package googleplaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/restaurant-locator/internal/config"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	searchNearbyPath = "/v1/places:searchNearby"

	SearchRadiusMeters = 1000.0
	MaxResultCount     = 20
	IncludedType       = "restaurant"

	maxErrorBodyBytes = 4 << 10
)

// FieldMask - ровно те поля, которые использует нормализатор
var FieldMask = []string{
	"places.id",
	"places.displayName",
	"places.location",
	"places.rating",
	"places.userRatingCount",
	"places.reviews",
	"places.photos",
	"places.formattedAddress",
	"places.websiteUri",
	"places.regularOpeningHours",
	"places.servesVegetarianFood",
	"places.priceLevel",
	"places.editorialSummary",
	"places.primaryTypeDisplayName",
	"places.plusCode",
	"places.internationalPhoneNumber",
	"places.takeout",
	"places.dineIn",
	"places.curbsidePickup",
	"places.delivery",
	"places.outdoorSeating",
	"places.parkingOptions",
	"places.allowsDogs",
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	fieldMask  string
	logger     *zap.Logger
}

// NewPlacesClient создает новый клиент для Google Places API (New)
func NewPlacesClient(cfg *config.PlacesConfig, logger *zap.Logger) repository.PlacesGateway {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		fieldMask: strings.Join(FieldMask, ","),
		logger:    logger,
	}
}

// SearchNearby ищет рестораны в радиусе 1 км от точки
func (c *client) SearchNearby(ctx context.Context, lat, lng float64) ([]json.RawMessage, error) {
	body, err := json.Marshal(newSearchNearbyRequest(lat, lng))
	if err != nil {
		return nil, errors.ErrGateway.WithCause(fmt.Errorf("failed to encode request: %w", err))
	}

	url := c.baseURL + searchNearbyPath

	c.logger.Debug("Calling Places searchNearby",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, errors.ErrGateway.WithCause(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", c.fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, errors.ErrGateway.WithCause(fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logger.Error("Places API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(errBody)))
		return nil, errors.ErrGateway.WithCause(fmt.Errorf("places API error: status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read response", zap.Error(err))
		return nil, errors.ErrGateway.WithCause(fmt.Errorf("failed to read response: %w", err))
	}

	places, err := decodePlaces(raw)
	if err != nil {
		c.logger.Warn("Places API returned unparseable payload",
			zap.Int("body_size", len(raw)),
			zap.Error(err))
		return nil, err
	}

	c.logger.Debug("Places searchNearby call successful",
		zap.Int("places_count", len(places)))

	return places, nil
}

// decodePlaces достаёт массив places из ответа; отсутствие поля - пустой результат
func decodePlaces(raw []byte) ([]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.ErrInvalidPayload.WithCause(err)
	}
	if envelope == nil {
		return nil, errors.ErrInvalidPayload.WithCause(fmt.Errorf("response is not an object"))
	}

	placesRaw, ok := envelope["places"]
	if !ok || isJSONNull(placesRaw) {
		return []json.RawMessage{}, nil
	}

	var places []json.RawMessage
	if err := json.Unmarshal(placesRaw, &places); err != nil {
		return nil, errors.ErrInvalidPayload.WithCause(fmt.Errorf("places is not an array: %w", err))
	}
	return places, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}
