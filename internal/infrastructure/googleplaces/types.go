package googleplaces

// searchNearbyRequest - тело запроса places:searchNearby
type searchNearbyRequest struct {
	LocationRestriction locationRestriction `json:"locationRestriction"`
	IncludedTypes       []string            `json:"includedTypes"`
	MaxResultCount      int                 `json:"maxResultCount"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func newSearchNearbyRequest(lat, lng float64) searchNearbyRequest {
	return searchNearbyRequest{
		LocationRestriction: locationRestriction{
			Circle: circle{
				Center: latLng{Latitude: lat, Longitude: lng},
				Radius: SearchRadiusMeters,
			},
		},
		IncludedTypes:  []string{IncludedType},
		MaxResultCount: MaxResultCount,
	}
}
