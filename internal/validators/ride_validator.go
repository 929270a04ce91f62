package validators

import (
	"fmt"
	"time"

	"taxihail/internal/models"
	"taxihail/internal/utils"
)

// ValidateBooking applies the per-ride-type booking rules and returns a map
// of field name to problem, empty when the request is acceptable. The rules
// mirror the booking forms: locations must be inside the service country,
// pickup and drop must not be the same place, and the pickup moment must be
// in the future.
func ValidateBooking(req *models.BookingRequest, now time.Time) map[string]string {
	errors := make(map[string]string)

	if !req.RideType.Valid() {
		errors["ride_type"] = "Unknown ride type"
		return errors
	}

	switch req.RideType {
	case models.RideTypeLocal:
		validateLocal(req, now, errors)
	case models.RideTypeRoundTrip:
		validatePointToPoint(req, now, errors)
		validateReturn(req, errors)
	case models.RideTypeAirport:
		validatePointToPoint(req, now, errors)
	default:
		validatePointToPoint(req, now, errors)
	}

	return errors
}

func validatePointToPoint(req *models.BookingRequest, now time.Time, errors map[string]string) {
	if req.Pickup == nil || req.Pickup.Address == "" {
		errors["pickup"] = "Pickup location required"
	}
	if req.Drop == nil || req.Drop.Address == "" {
		errors["drop"] = "Drop location required"
	}

	if req.Pickup.HasCoordinates() && req.Drop.HasCoordinates() {
		d := utils.HaversineKm(
			utils.Point{Lat: req.Pickup.Latitude(), Lng: req.Pickup.Longitude()},
			utils.Point{Lat: req.Drop.Latitude(), Lng: req.Drop.Longitude()},
		)
		if d < utils.SameLocationKm {
			errors["same"] = "Pickup and drop cannot be the same location"
		}
	}

	validatePickupTime(req, now, errors)
	validateCountry(req.Pickup, "pickup_country", errors)
	validateCountry(req.Drop, "drop_country", errors)
}

func validateLocal(req *models.BookingRequest, now time.Time, errors map[string]string) {
	if req.Pickup == nil || req.Pickup.Address == "" {
		errors["city"] = "Pickup city is required"
	}
	if req.EstimatedKm <= 0 {
		errors["estimated_km"] = "Estimated kilometres required (positive number)"
	} else if req.EstimatedKm > utils.MaxEstimatedKm {
		errors["estimated_km"] = fmt.Sprintf("Estimated kilometres cannot exceed %.0f", utils.MaxEstimatedKm)
	}

	validatePickupTime(req, now, errors)
	validateCountry(req.Pickup, "city_country", errors)
}

func validateReturn(req *models.BookingRequest, errors map[string]string) {
	if req.ReturnDate == "" {
		errors["return_date"] = "Return date required"
		return
	}

	returnDate, err := time.Parse("2006-01-02", req.ReturnDate)
	if err != nil {
		errors["return_date"] = "Invalid return date"
		return
	}
	pickupDate, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return // reported by validatePickupTime
	}
	if returnDate.Before(pickupDate) {
		errors["return_date"] = "Return date must be same or after pickup date"
	}
}

func validatePickupTime(req *models.BookingRequest, now time.Time, errors map[string]string) {
	pickupAt, err := ParsePickupAt(req.PickupDate, req.PickupTime)
	if err != nil {
		errors["datetime"] = "Invalid pickup date/time"
		return
	}
	if !pickupAt.After(now) {
		errors["datetime"] = "Pickup date/time must be in the future"
	}
	if pickupAt.Sub(now) > utils.MaxAdvanceBooking {
		errors["datetime"] = "Pickup date/time is too far in the future"
	}
}

func validateCountry(loc *models.Location, field string, errors map[string]string) {
	if loc == nil || loc.CountryCode == "" {
		return
	}
	if loc.CountryCode != utils.DefaultCountryCode {
		errors[field] = "Location must be in India"
	}
}

// ParsePickupAt combines the form's date and time strings into one moment
// in the server's timezone.
func ParsePickupAt(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}
