package interfaces

import (
	"context"

	"taxihail/internal/models"
)

// DriverRepository is the store surface for profiles in the users
// collection, keyed by auth UID.
type DriverRepository interface {
	// GetByUID returns ErrDriverNotFound when no profile exists.
	GetByUID(ctx context.Context, uid string) (*models.DriverProfile, error)

	// Upsert creates or replaces the profile (registration / profile edit).
	Upsert(ctx context.Context, profile *models.DriverProfile) error

	// SetAvailability toggles the driver's self-managed available flag.
	SetAvailability(ctx context.Context, uid string, available bool) error

	// IncrementCompletedRides bumps the completed-rides counter. Called
	// inside the transaction that completes a ride.
	IncrementCompletedRides(ctx context.Context, uid string) error
}
