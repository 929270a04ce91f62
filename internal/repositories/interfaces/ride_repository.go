package interfaces

import (
	"context"

	"taxihail/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideRepository is the store surface for ride documents. Methods called
// with a transaction-scoped context (see services.TxRunner) join that
// transaction; the protocol relies on this for its read-validate-write
// cycles. Timestamps stamped by the store (created_at, assigned_at) use the
// store's clock, never the caller's.
type RideRepository interface {
	// Create inserts a new ride with a store-assigned id and creation time.
	Create(ctx context.Context, ride *models.Ride) error

	// GetByID returns ErrRideNotFound when no document exists.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)

	// HasActiveRide reports whether the driver already holds a ride in an
	// active status (assigned or in_progress).
	HasActiveRide(ctx context.Context, driverUID string) (bool, error)

	// Assign claims the ride for the driver: sets driver_id, denormalizes
	// the driver's display name and vehicle, moves status to assigned and
	// stamps assigned_at with the store clock.
	Assign(ctx context.Context, id primitive.ObjectID, driver *models.DriverProfile) error

	// UpdateStatus sets status and nothing else.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RideStatus) error

	// Release returns the ride to the unclaimed pool: status back to
	// pending, driver_id and the denormalized driver fields cleared.
	Release(ctx context.Context, id primitive.ObjectID) error

	// Cancel marks the ride canceled and stamps canceled_at.
	Cancel(ctx context.Context, id primitive.ObjectID) error

	// ListByRider returns every ride owned by the rider, newest first.
	ListByRider(ctx context.Context, riderUID string) ([]*models.Ride, error)

	// ListDriverBoard returns the driver's working set: unclaimed pending
	// rides plus every ride assigned to this driver, newest first.
	ListDriverBoard(ctx context.Context, driverUID string) ([]*models.Ride, error)

	// Watch opens a live subscription over ride changes. The caller owns
	// the returned handle and must Close it on teardown.
	Watch(ctx context.Context) (RideSubscription, error)
}

// RideSubscription yields a sequence of immutable ride snapshots. Events is
// closed after Close or when the underlying stream dies.
type RideSubscription interface {
	Events() <-chan models.RideEvent
	Close(ctx context.Context) error
}
