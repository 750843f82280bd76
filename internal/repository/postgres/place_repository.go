package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type placeRow struct {
	ID                       int64     `db:"id"`
	ExternalPlaceID          string    `db:"external_place_id"`
	Name                     string    `db:"name"`
	Latitude                 *float64  `db:"latitude"`
	Longitude                *float64  `db:"longitude"`
	FormattedAddress         string    `db:"formatted_address"`
	InternationalPhoneNumber string    `db:"international_phone_number"`
	WebsiteURI               string    `db:"website_uri"`
	PrimaryTypeDisplayName   string    `db:"primary_type_display_name"`
	Rating                   *float64  `db:"rating"`
	UserRatingCount          int       `db:"user_rating_count"`
	PriceLevel               *int      `db:"price_level"`
	RegularOpeningHours      []byte    `db:"regular_opening_hours"`
	Takeout                  bool      `db:"takeout"`
	DineIn                   bool      `db:"dine_in"`
	CurbsidePickup           bool      `db:"curbside_pickup"`
	Delivery                 bool      `db:"delivery"`
	OutdoorSeating           bool      `db:"outdoor_seating"`
	ParkingOptions           []byte    `db:"parking_options"`
	AllowsDogs               bool      `db:"allows_dogs"`
	ServesVegetarianFood     bool      `db:"serves_vegetarian_food"`
	EditorialSummary         *string   `db:"editorial_summary"`
	PlusCode                 *string   `db:"plus_code"`
	CreatedAt                time.Time `db:"created_at"`
	UpdatedAt                time.Time `db:"updated_at"`
}

type reviewRow struct {
	Author      string     `db:"author"`
	Text        *string    `db:"text"`
	Rating      *float64   `db:"rating"`
	PublishTime *time.Time `db:"publish_time"`
}

type photoRow struct {
	Name     string `db:"name"`
	WidthPx  int    `db:"width_px"`
	HeightPx int    `db:"height_px"`
}

func (r *placeRepository) FindIDByExternalID(ctx context.Context, externalID string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT id FROM places WHERE external_place_id = $1`, externalID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return 0, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to find place", zap.String("external_place_id", externalID), zap.Error(err))
		return 0, errors.ErrDatabaseError.WithCause(err)
	}
	return id, nil
}

func (r *placeRepository) Create(ctx context.Context, place *domain.Place, now time.Time) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.ErrDatabaseError.WithCause(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO places (
			external_place_id, name, latitude, longitude,
			formatted_address, international_phone_number, website_uri, primary_type_display_name,
			rating, user_rating_count, price_level, regular_opening_hours,
			takeout, dine_in, curbside_pickup, delivery, outdoor_seating,
			parking_options, allows_dogs, serves_vegetarian_food,
			editorial_summary, plus_code, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $23
		)
		RETURNING id
	`

	var id int64
	err = tx.QueryRowContext(ctx, query,
		place.ExternalPlaceID, place.Name, place.Latitude, place.Longitude,
		place.FormattedAddress, place.InternationalPhoneNumber, place.WebsiteURI, place.PrimaryTypeDisplayName,
		place.Rating, place.UserRatingCount, place.PriceLevel, jsonParam(place.RegularOpeningHours),
		place.Takeout, place.DineIn, place.CurbsidePickup, place.Delivery, place.OutdoorSeating,
		jsonParam(place.ParkingOptions), place.AllowsDogs, place.ServesVegetarianFood,
		place.EditorialSummary, place.PlusCode, now,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errors.ErrDuplicate.WithCause(err)
		}
		r.logger.Error("Failed to insert place", zap.String("external_place_id", place.ExternalPlaceID), zap.Error(err))
		return 0, errors.ErrDatabaseError.WithCause(err)
	}

	for i, review := range place.Reviews {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO place_reviews (place_id, position, author, text, rating, publish_time)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, i, review.Author, review.Text, review.Rating, review.PublishTime)
		if err != nil {
			r.logger.Error("Failed to insert review", zap.Int64("place_id", id), zap.Error(err))
			return 0, errors.ErrDatabaseError.WithCause(err)
		}
	}

	for i, photo := range place.Photos {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO place_photos (place_id, position, name, width_px, height_px)
			VALUES ($1, $2, $3, $4, $5)
		`, id, i, photo.Name, photo.WidthPx, photo.HeightPx)
		if err != nil {
			r.logger.Error("Failed to insert photo", zap.Int64("place_id", id), zap.Error(err))
			return 0, errors.ErrDatabaseError.WithCause(err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return 0, errors.ErrDuplicate.WithCause(err)
		}
		return 0, errors.ErrDatabaseError.WithCause(err)
	}

	return id, nil
}

func (r *placeRepository) Update(ctx context.Context, id int64, place *domain.Place, now time.Time) error {
	query := `
		UPDATE places SET
			name = $2, latitude = $3, longitude = $4,
			formatted_address = $5, international_phone_number = $6, website_uri = $7,
			primary_type_display_name = $8, rating = $9, user_rating_count = $10,
			price_level = $11, regular_opening_hours = $12,
			takeout = $13, dine_in = $14, curbside_pickup = $15, delivery = $16, outdoor_seating = $17,
			parking_options = $18, allows_dogs = $19, serves_vegetarian_food = $20,
			editorial_summary = $21, plus_code = $22, updated_at = $23
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		id, place.Name, place.Latitude, place.Longitude,
		place.FormattedAddress, place.InternationalPhoneNumber, place.WebsiteURI,
		place.PrimaryTypeDisplayName, place.Rating, place.UserRatingCount,
		place.PriceLevel, jsonParam(place.RegularOpeningHours),
		place.Takeout, place.DineIn, place.CurbsidePickup, place.Delivery, place.OutdoorSeating,
		jsonParam(place.ParkingOptions), place.AllowsDogs, place.ServesVegetarianFood,
		place.EditorialSummary, place.PlusCode, now,
	)
	if err != nil {
		r.logger.Error("Failed to update place", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return errors.ErrPlaceNotFound
	}
	return nil
}

func (r *placeRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.PlaceRecord, error) {
	var row placeRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM places WHERE external_place_id = $1`, externalID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place", zap.String("external_place_id", externalID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	var reviews []reviewRow
	err = r.db.SelectContext(ctx, &reviews, `
		SELECT author, text, rating, publish_time
		FROM place_reviews WHERE place_id = $1 ORDER BY position
	`, row.ID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	var photos []photoRow
	err = r.db.SelectContext(ctx, &photos, `
		SELECT name, width_px, height_px
		FROM place_photos WHERE place_id = $1 ORDER BY position
	`, row.ID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	return row.toRecord(reviews, photos), nil
}

func (row *placeRow) toRecord(reviews []reviewRow, photos []photoRow) *domain.PlaceRecord {
	place := domain.Place{
		ExternalPlaceID:          row.ExternalPlaceID,
		Name:                     row.Name,
		Latitude:                 row.Latitude,
		Longitude:                row.Longitude,
		FormattedAddress:         row.FormattedAddress,
		InternationalPhoneNumber: row.InternationalPhoneNumber,
		WebsiteURI:               row.WebsiteURI,
		PrimaryTypeDisplayName:   row.PrimaryTypeDisplayName,
		Rating:                   row.Rating,
		UserRatingCount:          row.UserRatingCount,
		Reviews:                  make([]domain.Review, 0, len(reviews)),
		PriceLevel:               row.PriceLevel,
		RegularOpeningHours:      json.RawMessage(row.RegularOpeningHours),
		Takeout:                  row.Takeout,
		DineIn:                   row.DineIn,
		CurbsidePickup:           row.CurbsidePickup,
		Delivery:                 row.Delivery,
		OutdoorSeating:           row.OutdoorSeating,
		ParkingOptions:           json.RawMessage(row.ParkingOptions),
		AllowsDogs:               row.AllowsDogs,
		ServesVegetarianFood:     row.ServesVegetarianFood,
		EditorialSummary:         row.EditorialSummary,
		Photos:                   make([]domain.PhotoRef, 0, len(photos)),
		PlusCode:                 row.PlusCode,
	}

	for _, rv := range reviews {
		place.Reviews = append(place.Reviews, domain.Review{
			Author:      rv.Author,
			Text:        rv.Text,
			Rating:      rv.Rating,
			PublishTime: rv.PublishTime,
		})
	}
	for _, ph := range photos {
		place.Photos = append(place.Photos, domain.PhotoRef{
			Name:     ph.Name,
			WidthPx:  ph.WidthPx,
			HeightPx: ph.HeightPx,
		})
	}

	return &domain.PlaceRecord{
		ID:        row.ID,
		Place:     place,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// jsonParam передаёт JSONB как текст; пустое значение и JSON null - SQL NULL
func jsonParam(raw json.RawMessage) interface{} {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return string(raw)
}
