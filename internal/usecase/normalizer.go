package usecase

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/pkg/errors"
)

// rawObject - JSON объект с отложенным разбором полей
type rawObject map[string]json.RawMessage

// NormalizePlace преобразует запись Places API во внутреннюю модель.
// Отсутствующие или некорректные поля получают значения по умолчанию;
// ошибка возвращается только если запись не является JSON объектом.
func NormalizePlace(raw json.RawMessage) (*domain.Place, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, errors.ErrInvalidPayload.WithDetails(map[string]interface{}{
			"reason": "place record is not an object",
		})
	}

	place := &domain.Place{
		ExternalPlaceID:          stringOr(obj["id"], ""),
		Name:                     nestedTextOr(obj["displayName"], domain.NotAvailable),
		FormattedAddress:         stringOr(obj["formattedAddress"], domain.NotAvailable),
		InternationalPhoneNumber: stringOr(obj["internationalPhoneNumber"], domain.NotAvailable),
		WebsiteURI:               stringOr(obj["websiteUri"], domain.NotAvailable),
		PrimaryTypeDisplayName:   nestedTextOr(obj["primaryTypeDisplayName"], domain.NotAvailable),

		Rating:          floatPtr(obj["rating"]),
		UserRatingCount: nonNegativeInt(obj["userRatingCount"]),
		Reviews:         normalizeReviews(obj["reviews"]),

		PriceLevel:          priceLevel(obj["priceLevel"]),
		RegularOpeningHours: blob(obj["regularOpeningHours"]),
		Takeout:             boolOr(obj["takeout"]),
		DineIn:              boolOr(obj["dineIn"]),
		CurbsidePickup:      boolOr(obj["curbsidePickup"]),
		Delivery:            boolOr(obj["delivery"]),
		OutdoorSeating:      boolOr(obj["outdoorSeating"]),
		ParkingOptions:      blob(obj["parkingOptions"]),
		AllowsDogs:          boolOr(obj["allowsDogs"]),

		ServesVegetarianFood: boolOr(obj["servesVegetarianFood"]),
		EditorialSummary:     nestedTextPtr(obj["editorialSummary"]),

		Photos:   normalizePhotos(obj["photos"]),
		PlusCode: plusCode(obj["plusCode"]),
	}

	if location, ok := asObject(obj["location"]); ok {
		place.Latitude = floatPtr(location["latitude"])
		place.Longitude = floatPtr(location["longitude"])
	}

	return place, nil
}

// NormalizePlaces нормализует пачку записей, пропуская не-объекты.
// Возвращает нормализованные места и число пропущенных записей.
func NormalizePlaces(records []json.RawMessage) ([]*domain.Place, int) {
	places := make([]*domain.Place, 0, len(records))
	skipped := 0
	for _, record := range records {
		place, err := NormalizePlace(record)
		if err != nil {
			skipped++
			continue
		}
		places = append(places, place)
	}
	return places, skipped
}

func normalizeReviews(raw json.RawMessage) []domain.Review {
	items := asArray(raw)
	reviews := make([]domain.Review, 0, len(items))
	for _, item := range items {
		review := domain.Review{Author: domain.AnonymousAuthor}
		if obj, ok := asObject(item); ok {
			if author, ok := asObject(obj["authorAttribution"]); ok {
				review.Author = stringOr(author["displayName"], domain.AnonymousAuthor)
			}
			review.Text = nestedTextPtr(obj["text"])
			review.Rating = floatPtr(obj["rating"])
			review.PublishTime = timePtr(obj["publishTime"])
		}
		reviews = append(reviews, review)
	}
	return reviews
}

func normalizePhotos(raw json.RawMessage) []domain.PhotoRef {
	items := asArray(raw)
	photos := make([]domain.PhotoRef, 0, len(items))
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		photos = append(photos, domain.PhotoRef{
			Name:     stringOr(obj["name"], ""),
			WidthPx:  nonNegativeInt(obj["widthPx"]),
			HeightPx: nonNegativeInt(obj["heightPx"]),
		})
	}
	return photos
}

func asObject(raw json.RawMessage) (rawObject, bool) {
	if !isPresent(raw) {
		return nil, false
	}
	var obj rawObject
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func asArray(raw json.RawMessage) []json.RawMessage {
	if !isPresent(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func stringOr(raw json.RawMessage, fallback string) string {
	if !isPresent(raw) {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return fallback
	}
	return s
}

// nestedTextOr разворачивает {"text": "..."} на один уровень
func nestedTextOr(raw json.RawMessage, fallback string) string {
	obj, ok := asObject(raw)
	if !ok {
		return fallback
	}
	return stringOr(obj["text"], fallback)
}

func nestedTextPtr(raw json.RawMessage) *string {
	text := nestedTextOr(raw, "")
	if text == "" {
		return nil
	}
	return &text
}

func floatPtr(raw json.RawMessage) *float64 {
	if !isPresent(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// nonNegativeInt ограничивает значение диапазоном колонки INTEGER
func nonNegativeInt(raw json.RawMessage) int {
	f := floatPtr(raw)
	if f == nil || *f < 0 {
		return 0
	}
	if *f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(*f)
}

func boolOr(raw json.RawMessage) bool {
	if !isPresent(raw) {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// blob пропускает структурированное значение без изменений
func blob(raw json.RawMessage) json.RawMessage {
	if !isPresent(raw) {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

// priceLevel принимает число или числовую строку; остальное и значения вне INTEGER - null
func priceLevel(raw json.RawMessage) *int {
	if !isPresent(raw) {
		return nil
	}
	if f := floatPtr(raw); f != nil {
		return intInRange(*f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return intInRange(f)
	}
	return nil
}

func intInRange(f float64) *int {
	if f <= math.MinInt32-1 || f >= math.MaxInt32+1 {
		return nil
	}
	level := int(f)
	return &level
}

// plusCode извлекает plusCode.globalCode; строковое значение принимается как есть
func plusCode(raw json.RawMessage) *string {
	if obj, ok := asObject(raw); ok {
		if code := stringOr(obj["globalCode"], ""); code != "" {
			return &code
		}
		return nil
	}
	if code := stringOr(raw, ""); code != "" {
		return &code
	}
	return nil
}

func timePtr(raw json.RawMessage) *time.Time {
	s := strings.TrimSpace(stringOr(raw, ""))
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
