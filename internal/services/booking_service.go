package services

import (
	"context"
	"math"
	"time"

	"taxihail/internal/models"
	"taxihail/internal/repositories/interfaces"
	"taxihail/internal/utils"
	"taxihail/internal/validators"
	"taxihail/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FareConfig holds the booking-time fare estimation parameters.
type FareConfig struct {
	RatePerKm  float64
	RoadFactor float64
	Currency   string
}

// BookingService is the rider-facing writer: it composes ride documents
// from validated form input and inserts them in the initial pending,
// unclaimed state. Everything after insertion belongs to the claim
// protocol.
type BookingService interface {
	// QuoteFare estimates distance and fare for the request without
	// persisting anything.
	QuoteFare(req *models.BookingRequest) *models.FareQuote

	// CreateRide validates the request and inserts the ride with
	// status=pending, driverId=null and a store-stamped creation time.
	// Validation problems come back as a field→message map.
	CreateRide(ctx context.Context, riderUID string, req *models.BookingRequest) (*models.Ride, map[string]string, error)

	// CancelRide moves a rider's own pending ride to the canceled
	// terminal. Claimed rides cannot be canceled by the rider.
	CancelRide(ctx context.Context, rideID primitive.ObjectID, riderUID string) error
}

type bookingService struct {
	rides  interfaces.RideRepository
	tx     TxRunner
	fare   FareConfig
	logger *logger.Logger
}

func NewBookingService(rides interfaces.RideRepository, tx TxRunner, fare FareConfig, log *logger.Logger) BookingService {
	if fare.RatePerKm <= 0 {
		fare.RatePerKm = utils.DefaultRatePerKm
	}
	if fare.RoadFactor <= 0 {
		fare.RoadFactor = utils.DefaultRoadFactor
	}
	if fare.Currency == "" {
		fare.Currency = utils.DefaultCurrency
	}

	return &bookingService{
		rides:  rides,
		tx:     tx,
		fare:   fare,
		logger: log,
	}
}

func (s *bookingService) QuoteFare(req *models.BookingRequest) *models.FareQuote {
	var km float64

	switch req.RideType {
	case models.RideTypeLocal:
		km = req.EstimatedKm
	default:
		if !req.Pickup.HasCoordinates() || !req.Drop.HasCoordinates() {
			return &models.FareQuote{Currency: s.fare.Currency}
		}
		km = utils.RoadDistanceKm(
			utils.Point{Lat: req.Pickup.Latitude(), Lng: req.Pickup.Longitude()},
			utils.Point{Lat: req.Drop.Latitude(), Lng: req.Drop.Longitude()},
			s.fare.RoadFactor,
		)
		km = math.Max(utils.MinTripDistanceKm, km)
		if req.RideType == models.RideTypeRoundTrip {
			km *= 2
		}
	}

	return &models.FareQuote{
		Km:       km,
		Amount:   math.Round(km * s.fare.RatePerKm),
		Currency: s.fare.Currency,
	}
}

func (s *bookingService) CreateRide(ctx context.Context, riderUID string, req *models.BookingRequest) (*models.Ride, map[string]string, error) {
	if fieldErrors := validators.ValidateBooking(req, time.Now()); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	pickupAt, err := validators.ParsePickupAt(req.PickupDate, req.PickupTime)
	if err != nil {
		return nil, map[string]string{"datetime": "Invalid pickup date/time"}, nil
	}

	var returnAt *time.Time
	if req.ReturnDate != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", req.ReturnDate, time.Local); err == nil {
			returnAt = &parsed
		}
	}

	quote := s.QuoteFare(req)

	ride := &models.Ride{
		RiderID:     riderUID,
		RideType:    req.RideType,
		Status:      models.RideStatusPending,
		Pickup:      req.Pickup,
		Drop:        req.Drop,
		PickupAt:    pickupAt,
		ReturnAt:    returnAt,
		EstimatedKm: quote.Km,
		Fare:        quote.Amount,
		Currency:    quote.Currency,
		Notes:       req.Notes,
	}

	if err := s.rides.Create(ctx, ride); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"ride_id":   ride.ID.Hex(),
		"rider_id":  riderUID,
		"ride_type": string(ride.RideType),
		"fare":      ride.Fare,
	}).Info("Ride booked")

	return ride, nil, nil
}

func (s *bookingService) CancelRide(ctx context.Context, rideID primitive.ObjectID, riderUID string) error {
	err := s.tx.RunTransaction(ctx, func(txCtx context.Context) error {
		ride, err := s.rides.GetByID(txCtx, rideID)
		if err != nil {
			return err
		}

		if ride.RiderID != riderUID {
			return ErrNotRideOwner
		}
		if ride.Status != models.RideStatusPending {
			return ErrRideNotCancelable
		}

		return s.rides.Cancel(txCtx, rideID)
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"ride_id":  rideID.Hex(),
		"rider_id": riderUID,
	}).Info("Ride canceled")

	return nil
}
