package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
)

// CountPlaces возвращает число строк places с данным внешним ID
func CountPlaces(db *sql.DB, externalID string) (int, error) {
	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM places WHERE external_place_id = $1", externalID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count places %s: %w", externalID, err)
	}
	return n, nil
}

// CountChildren возвращает число отзывов и фото места
func CountChildren(db *sql.DB, externalID string) (reviews, photos int, err error) {
	err = db.QueryRowContext(context.Background(), `
		SELECT
			(SELECT COUNT(*) FROM place_reviews r JOIN places p ON p.id = r.place_id WHERE p.external_place_id = $1),
			(SELECT COUNT(*) FROM place_photos f JOIN places p ON p.id = f.place_id WHERE p.external_place_id = $1)
	`, externalID).Scan(&reviews, &photos)
	if err != nil {
		return 0, 0, fmt.Errorf("count children %s: %w", externalID, err)
	}
	return reviews, photos, nil
}

// CountUsers возвращает общее число пользователей
func CountUsers(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
