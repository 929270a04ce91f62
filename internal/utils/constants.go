package utils

import "time"

// Application constants
const (
	AppName    = "TaxiHail"
	AppVersion = "1.0.0"

	DefaultLanguage    = "en"
	DefaultCurrency    = "INR"
	DefaultCountryCode = "in"
	DefaultTimeZone    = "Asia/Kolkata"

	// Fare estimation
	DefaultRatePerKm  = 12.0 // rupees per kilometer
	DefaultRoadFactor = 1.2  // haversine to road-distance adjustment
	MinTripDistanceKm = 0.1

	// Booking limits
	MaxNotesLength    = 500
	MaxEstimatedKm    = 500.0
	SameLocationKm    = 0.1 // pickup and drop closer than this are "the same place"
	MaxAdvanceBooking = 90 * 24 * time.Hour

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"

	// Common error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)
