package validators

import (
	"testing"
	"time"

	"taxihail/internal/models"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

func location(address, country string, coords ...float64) *models.Location {
	loc := &models.Location{
		Type:        "Point",
		Address:     address,
		CountryCode: country,
	}
	if len(coords) == 2 {
		loc.Coordinates = []float64{coords[1], coords[0]} // lng, lat
	}
	return loc
}

func onewayRequest() *models.BookingRequest {
	return &models.BookingRequest{
		RideType:   models.RideTypeOneWay,
		Pickup:     location("MG Road, Bengaluru", "in", 12.9758, 77.6045),
		Drop:       location("Airport, Bengaluru", "in", 13.1989, 77.7068),
		PickupDate: "2026-03-11",
		PickupTime: "10:30",
	}
}

func TestValidateBookingOneWay(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		if errs := ValidateBooking(onewayRequest(), testNow); len(errs) != 0 {
			t.Errorf("errors = %v, want none", errs)
		}
	})

	t.Run("missing locations", func(t *testing.T) {
		req := onewayRequest()
		req.Pickup = nil
		req.Drop = &models.Location{}

		errs := ValidateBooking(req, testNow)
		if errs["pickup"] == "" || errs["drop"] == "" {
			t.Errorf("errors = %v, want pickup and drop complaints", errs)
		}
	})

	t.Run("same pickup and drop", func(t *testing.T) {
		req := onewayRequest()
		req.Drop = location("MG Road again", "in", 12.9758, 77.6045)

		if errs := ValidateBooking(req, testNow); errs["same"] == "" {
			t.Errorf("errors = %v, want same-location complaint", errs)
		}
	})

	t.Run("addresses without coordinates skip the distance check", func(t *testing.T) {
		req := onewayRequest()
		req.Pickup = location("Somewhere", "in")
		req.Drop = location("Somewhere else", "in")

		if errs := ValidateBooking(req, testNow); len(errs) != 0 {
			t.Errorf("errors = %v, want none", errs)
		}
	})

	t.Run("pickup in the past", func(t *testing.T) {
		req := onewayRequest()
		req.PickupDate = "2026-03-09"

		if errs := ValidateBooking(req, testNow); errs["datetime"] == "" {
			t.Errorf("errors = %v, want datetime complaint", errs)
		}
	})

	t.Run("pickup too far out", func(t *testing.T) {
		req := onewayRequest()
		req.PickupDate = "2026-09-01"

		if errs := ValidateBooking(req, testNow); errs["datetime"] == "" {
			t.Errorf("errors = %v, want datetime complaint", errs)
		}
	})

	t.Run("malformed time", func(t *testing.T) {
		req := onewayRequest()
		req.PickupTime = "half past ten"

		if errs := ValidateBooking(req, testNow); errs["datetime"] == "" {
			t.Errorf("errors = %v, want datetime complaint", errs)
		}
	})

	t.Run("foreign location", func(t *testing.T) {
		req := onewayRequest()
		req.Drop = location("Colombo", "lk", 6.9271, 79.8612)

		if errs := ValidateBooking(req, testNow); errs["drop_country"] == "" {
			t.Errorf("errors = %v, want drop_country complaint", errs)
		}
	})

	t.Run("unknown ride type", func(t *testing.T) {
		req := onewayRequest()
		req.RideType = "hyperloop"

		if errs := ValidateBooking(req, testNow); errs["ride_type"] == "" {
			t.Errorf("errors = %v, want ride_type complaint", errs)
		}
	})
}

func TestValidateBookingRoundTrip(t *testing.T) {
	base := func() *models.BookingRequest {
		req := onewayRequest()
		req.RideType = models.RideTypeRoundTrip
		req.ReturnDate = "2026-03-12"
		return req
	}

	t.Run("valid request", func(t *testing.T) {
		if errs := ValidateBooking(base(), testNow); len(errs) != 0 {
			t.Errorf("errors = %v, want none", errs)
		}
	})

	t.Run("missing return date", func(t *testing.T) {
		req := base()
		req.ReturnDate = ""

		if errs := ValidateBooking(req, testNow); errs["return_date"] == "" {
			t.Errorf("errors = %v, want return_date complaint", errs)
		}
	})

	t.Run("return before pickup", func(t *testing.T) {
		req := base()
		req.ReturnDate = "2026-03-10"

		if errs := ValidateBooking(req, testNow); errs["return_date"] == "" {
			t.Errorf("errors = %v, want return_date complaint", errs)
		}
	})

	t.Run("same-day return is allowed", func(t *testing.T) {
		req := base()
		req.ReturnDate = req.PickupDate

		if errs := ValidateBooking(req, testNow); errs["return_date"] != "" {
			t.Errorf("errors = %v, same-day return must pass", errs)
		}
	})
}

func TestValidateBookingLocal(t *testing.T) {
	base := func() *models.BookingRequest {
		return &models.BookingRequest{
			RideType:    models.RideTypeLocal,
			Pickup:      location("Bengaluru", "in"),
			PickupDate:  "2026-03-11",
			PickupTime:  "08:00",
			EstimatedKm: 40,
		}
	}

	t.Run("valid request", func(t *testing.T) {
		if errs := ValidateBooking(base(), testNow); len(errs) != 0 {
			t.Errorf("errors = %v, want none", errs)
		}
	})

	t.Run("missing city", func(t *testing.T) {
		req := base()
		req.Pickup = nil

		if errs := ValidateBooking(req, testNow); errs["city"] == "" {
			t.Errorf("errors = %v, want city complaint", errs)
		}
	})

	t.Run("estimate bounds", func(t *testing.T) {
		for _, km := range []float64{0, -5, 501} {
			req := base()
			req.EstimatedKm = km

			if errs := ValidateBooking(req, testNow); errs["estimated_km"] == "" {
				t.Errorf("EstimatedKm=%v: errors = %v, want estimated_km complaint", km, errs)
			}
		}
	})
}

func TestParsePickupAt(t *testing.T) {
	at, err := ParsePickupAt("2026-03-11", "10:30")
	if err != nil {
		t.Fatalf("ParsePickupAt() error = %v", err)
	}

	want := time.Date(2026, 3, 11, 10, 30, 0, 0, time.Local)
	if !at.Equal(want) {
		t.Errorf("ParsePickupAt() = %v, want %v", at, want)
	}

	if _, err := ParsePickupAt("11-03-2026", "10:30"); err == nil {
		t.Error("expected error for a malformed date")
	}
}
