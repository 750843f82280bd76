package dto

// LocationLookupRequest - координаты для поиска ресторанов поблизости
type LocationLookupRequest struct {
	Lat float64
	Lng float64
}

// SyncProfileRequest - тело запроса синхронизации профиля
type SyncProfileRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}
