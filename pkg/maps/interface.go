package maps

import "context"

// Provider is the suggestion/geocoding lookup behind the booking forms.
// Results are display material only; the booking writer snapshots whatever
// the rider picked, it never re-resolves.
type Provider interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]Place, error)
}

type Place struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	City        string  `json:"city,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	PlaceID     string  `json:"place_id,omitempty"`
	Type        string  `json:"type,omitempty"`
}
