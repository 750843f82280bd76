package dto

import "github.com/restaurant-locator/internal/domain"

// LocationLookupResponse - рестораны рядом с точкой запроса
type LocationLookupResponse struct {
	NearbyRestaurants []*domain.Place `json:"nearbyRestaurants"`
}

// SyncProfileResponse - результат синхронизации профиля
type SyncProfileResponse struct {
	Message string              `json:"message"`
	User    *domain.UserProfile `json:"user"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
