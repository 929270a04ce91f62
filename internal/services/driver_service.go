package services

import (
	"context"

	"taxihail/internal/models"
	"taxihail/internal/repositories/interfaces"
	"taxihail/pkg/logger"
)

// DriverService manages driver/rider profiles in the users collection.
// Availability is the driver's own toggle and is independent from the claim
// protocol: an unavailable driver simply is not shown the pending pool by
// the UI, but availability is not a claim precondition.
type DriverService interface {
	GetProfile(ctx context.Context, uid string) (*models.DriverProfile, error)
	UpsertProfile(ctx context.Context, profile *models.DriverProfile) (*models.DriverProfile, error)
	SetAvailability(ctx context.Context, uid string, available bool) error
}

type driverService struct {
	drivers interfaces.DriverRepository
	logger  *logger.Logger
}

func NewDriverService(drivers interfaces.DriverRepository, log *logger.Logger) DriverService {
	return &driverService{
		drivers: drivers,
		logger:  log,
	}
}

func (s *driverService) GetProfile(ctx context.Context, uid string) (*models.DriverProfile, error) {
	return s.drivers.GetByUID(ctx, uid)
}

func (s *driverService) UpsertProfile(ctx context.Context, profile *models.DriverProfile) (*models.DriverProfile, error) {
	if profile.Role == "" {
		profile.Role = models.RoleRider
	}

	if err := s.drivers.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.WithUID(profile.UID).WithField("role", string(profile.Role)).Info("Profile saved")

	return s.drivers.GetByUID(ctx, profile.UID)
}

func (s *driverService) SetAvailability(ctx context.Context, uid string, available bool) error {
	if err := s.drivers.SetAvailability(ctx, uid, available); err != nil {
		return err
	}

	s.logger.WithUID(uid).WithField("available", available).Info("Driver availability updated")
	return nil
}
