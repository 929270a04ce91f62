package services

import (
	"context"
	"fmt"

	"taxihail/internal/models"
	"taxihail/internal/repositories/interfaces"
	"taxihail/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxRunner executes a callback inside one serializable store transaction.
// Reads and writes issued through the context passed to the callback join
// the transaction; the callback may be re-run on contention, so it must be
// pure with respect to everything except its own reads.
type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RideProtocolService is the claim/transition protocol: three atomic
// operations over ride documents. Concurrent invocations from independent
// sessions coordinate only through the store's transactions — this service
// holds no state between calls and every operation re-reads the ride fresh
// inside its own transaction.
//
// Each operation returns nil on commit, or one of the typed failures in
// errors.go naming the first precondition that did not hold. Transactions
// never leave partial writes behind, so any failure leaves the ride exactly
// as it was.
type RideProtocolService interface {
	// ClaimRide assigns a pending, unclaimed ride to the driver. If two
	// claims race on the same ride, the store serializes them; the loser
	// re-evaluates its preconditions against the winner's commit and fails
	// with ErrRideNotAvailable or ErrRideTaken.
	ClaimRide(ctx context.Context, rideID primitive.ObjectID, driverUID string) error

	// AdvanceStatus moves an owned ride forward: assigned → in_progress →
	// completed. Re-issuing the current status is a no-op success. On
	// completion the driver's completed-rides counter is bumped in the
	// same transaction.
	AdvanceStatus(ctx context.Context, rideID primitive.ObjectID, driverUID string, newStatus models.RideStatus) error

	// ReleaseRide returns an owned active ride to the unclaimed pool,
	// clearing the driver assignment and its denormalized fields.
	ReleaseRide(ctx context.Context, rideID primitive.ObjectID, driverUID string) error
}

type rideProtocolService struct {
	rides   interfaces.RideRepository
	drivers interfaces.DriverRepository
	tx      TxRunner
	logger  *logger.Logger
}

func NewRideProtocolService(
	rides interfaces.RideRepository,
	drivers interfaces.DriverRepository,
	tx TxRunner,
	log *logger.Logger,
) RideProtocolService {
	return &rideProtocolService{
		rides:   rides,
		drivers: drivers,
		tx:      tx,
		logger:  log,
	}
}

func (s *rideProtocolService) ClaimRide(ctx context.Context, rideID primitive.ObjectID, driverUID string) error {
	err := s.tx.RunTransaction(ctx, func(txCtx context.Context) error {
		ride, err := s.rides.GetByID(txCtx, rideID)
		if err != nil {
			return err
		}

		driver, err := s.drivers.GetByUID(txCtx, driverUID)
		if err != nil {
			return err
		}

		if ride.DriverID != nil {
			return ErrRideTaken
		}
		if ride.Status != models.RideStatusPending {
			return ErrRideNotAvailable
		}

		active, err := s.rides.HasActiveRide(txCtx, driverUID)
		if err != nil {
			return fmt.Errorf("active ride check failed: %w", err)
		}
		if active {
			return ErrActiveRideExists
		}

		return s.rides.Assign(txCtx, rideID, driver)
	})
	if err != nil {
		s.logClaimFailure(rideID, driverUID, err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"ride_id":   rideID.Hex(),
		"driver_id": driverUID,
	}).Info("Ride claimed")

	return nil
}

func (s *rideProtocolService) AdvanceStatus(ctx context.Context, rideID primitive.ObjectID, driverUID string, newStatus models.RideStatus) error {
	if newStatus != models.RideStatusInProgress && newStatus != models.RideStatusCompleted {
		return ErrInvalidStatus
	}

	err := s.tx.RunTransaction(ctx, func(txCtx context.Context) error {
		ride, err := s.rides.GetByID(txCtx, rideID)
		if err != nil {
			return err
		}

		if ride.DriverID == nil || *ride.DriverID != driverUID {
			return ErrNotRideOwner
		}

		// Re-issuing the current status is safe; nothing to write.
		if ride.Status == newStatus {
			return nil
		}
		if !models.CanAdvanceTo(ride.Status, newStatus) {
			return ErrInvalidTransition
		}

		if err := s.rides.UpdateStatus(txCtx, rideID, newStatus); err != nil {
			return err
		}

		if newStatus == models.RideStatusCompleted {
			return s.drivers.IncrementCompletedRides(txCtx, driverUID)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"ride_id":   rideID.Hex(),
		"driver_id": driverUID,
		"status":    string(newStatus),
	}).Info("Ride status advanced")

	return nil
}

func (s *rideProtocolService) ReleaseRide(ctx context.Context, rideID primitive.ObjectID, driverUID string) error {
	err := s.tx.RunTransaction(ctx, func(txCtx context.Context) error {
		ride, err := s.rides.GetByID(txCtx, rideID)
		if err != nil {
			return err
		}

		if ride.DriverID == nil || *ride.DriverID != driverUID {
			return ErrNotRideOwner
		}
		if !ride.Status.IsActive() {
			return ErrInvalidTransition
		}

		return s.rides.Release(txCtx, rideID)
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"ride_id":   rideID.Hex(),
		"driver_id": driverUID,
	}).Info("Ride released")

	return nil
}

func (s *rideProtocolService) logClaimFailure(rideID primitive.ObjectID, driverUID string, err error) {
	entry := s.logger.WithFields(map[string]interface{}{
		"ride_id":   rideID.Hex(),
		"driver_id": driverUID,
	}).WithError(err)

	// Losing a race is business as usual, not an error.
	if IsPreconditionFailed(err) || IsNotFound(err) {
		entry.Debug("Claim rejected")
		return
	}
	entry.Error("Claim failed")
}
