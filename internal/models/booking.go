package models

// BookingRequest is the form payload a rider submits. Dates and times come
// through as the form strings ("2006-01-02", "15:04"); semantic checks live
// in the validators package.
type BookingRequest struct {
	RideType    RideType  `json:"ride_type" binding:"required"`
	Pickup      *Location `json:"pickup"`
	Drop        *Location `json:"drop"`
	PickupDate  string    `json:"pickup_date" binding:"required"`
	PickupTime  string    `json:"pickup_time" binding:"required"`
	ReturnDate  string    `json:"return_date"`
	EstimatedKm float64   `json:"estimated_km"`
	Notes       string    `json:"notes"`
}

// FareQuote is the client-side fare estimate attached to a ride at booking
// time. It is immutable afterwards.
type FareQuote struct {
	Km       float64 `json:"km"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
