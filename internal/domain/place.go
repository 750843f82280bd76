package domain

import (
	"encoding/json"
	"time"
)

// NotAvailable - значение для отсутствующих строковых полей (адрес, телефон, сайт, тип)
const NotAvailable = "N/A"

// AnonymousAuthor - автор отзыва по умолчанию
const AnonymousAuthor = "Anonymous"

// Place - ресторан из Places API в нормализованном виде.
// Все скалярные поля имеют значение по умолчанию, nullable поля - указатели.
type Place struct {
	ExternalPlaceID          string   `json:"externalPlaceId"`
	Name                     string   `json:"name"`
	Latitude                 *float64 `json:"latitude"`
	Longitude                *float64 `json:"longitude"`
	FormattedAddress         string   `json:"formattedAddress"`
	InternationalPhoneNumber string   `json:"internationalPhoneNumber"`
	WebsiteURI               string   `json:"websiteUri"`
	PrimaryTypeDisplayName   string   `json:"primaryTypeDisplayName"`

	Rating          *float64 `json:"rating"`
	UserRatingCount int      `json:"userRatingCount"`
	Reviews         []Review `json:"reviews"`

	PriceLevel          *int            `json:"priceLevel"`
	RegularOpeningHours json.RawMessage `json:"regularOpeningHours"`
	Takeout             bool            `json:"takeout"`
	DineIn              bool            `json:"dineIn"`
	CurbsidePickup      bool            `json:"curbsidePickup"`
	Delivery            bool            `json:"delivery"`
	OutdoorSeating      bool            `json:"outdoorSeating"`
	ParkingOptions      json.RawMessage `json:"parkingOptions"`
	AllowsDogs          bool            `json:"allowsDogs"`

	ServesVegetarianFood bool    `json:"servesVegetarianFood"`
	EditorialSummary     *string `json:"editorialSummary"`

	Photos   []PhotoRef `json:"photos"`
	PlusCode *string    `json:"plusCode"`

	// Distance - расстояние в метрах от точки запроса, не сохраняется
	Distance float64 `json:"distance"`
}

// HasIdentifier проверяет наличие внешнего идентификатора
func (p *Place) HasIdentifier() bool {
	return p.ExternalPlaceID != ""
}

// Review - отзыв о месте, создаётся только вместе с местом
type Review struct {
	Author      string     `json:"author"`
	Text        *string    `json:"text"`
	Rating      *float64   `json:"rating"`
	PublishTime *time.Time `json:"publishTime"`
}

// PhotoRef - ссылка на фото; само изображение запрашивается отдельно по Name
type PhotoRef struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx"`
	HeightPx int    `json:"heightPx"`
}

// PlaceRecord - сохранённое место со служебными полями
type PlaceRecord struct {
	ID        int64
	Place     Place
	CreatedAt time.Time
	UpdatedAt time.Time
}
