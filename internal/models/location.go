package models

// Location is a snapshot of a place at booking time: the display address the
// rider picked plus optional GeoJSON coordinates ([lng, lat]) when the
// geocoder supplied them.
type Location struct {
	Type        string    `json:"type" bson:"type" default:"Point"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
	Address     string    `json:"address" bson:"address"`
	City        string    `json:"city" bson:"city"`
	CountryCode string    `json:"country_code" bson:"country_code"`
	PlaceID     string    `json:"place_id" bson:"place_id"`
}

func (l *Location) HasCoordinates() bool {
	return l != nil && len(l.Coordinates) >= 2
}

func (l *Location) Latitude() float64 {
	if l.HasCoordinates() {
		return l.Coordinates[1]
	}
	return 0
}

func (l *Location) Longitude() float64 {
	if l.HasCoordinates() {
		return l.Coordinates[0]
	}
	return 0
}
