package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"taxihail/internal/models"
	"taxihail/internal/repositories/interfaces"
	"taxihail/pkg/logger"
)

// Viewer identifies who a board is rendered for.
type Viewer struct {
	UID  string
	Role models.UserRole
}

// Status-priority ranking per role. The sort is cosmetic — it decides what
// the dashboard shows first and carries no correctness weight.
var driverStatusRank = map[models.RideStatus]int{
	models.RideStatusPending:    1,
	models.RideStatusAssigned:   2,
	models.RideStatusInProgress: 3,
	models.RideStatusCompleted:  4,
}

var riderStatusRank = map[models.RideStatus]int{
	models.RideStatusPending:    1,
	models.RideStatusInProgress: 2,
	models.RideStatusAssigned:   3,
	models.RideStatusCompleted:  4,
	models.RideStatusCanceled:   5,
}

const boardCacheTTL = 10 * time.Second

// DashboardService produces the role-scoped ride projections. Boards are
// read-only, eventually-consistent snapshots: they may be served from a
// short-lived cache and are never used to decide a write.
type DashboardService interface {
	// Board returns the viewer's rides, sorted by the role's status
	// ranking. Drivers see the unclaimed pending pool plus their own
	// rides (canceled excluded); riders see everything they booked.
	Board(ctx context.Context, viewer Viewer) ([]*models.Ride, error)

	// Subscribe opens a live stream of ride changes. The caller owns the
	// handle and must Close it on teardown.
	Subscribe(ctx context.Context) (interfaces.RideSubscription, error)

	// VisibleTo reports whether a changed ride belongs on the viewer's
	// board, used to route live events.
	VisibleTo(viewer Viewer, ride *models.Ride) bool
}

type dashboardService struct {
	rides  interfaces.RideRepository
	cache  CacheService
	logger *logger.Logger
}

func NewDashboardService(rides interfaces.RideRepository, cacheService CacheService, log *logger.Logger) DashboardService {
	return &dashboardService{
		rides:  rides,
		cache:  cacheService,
		logger: log,
	}
}

func (s *dashboardService) Board(ctx context.Context, viewer Viewer) ([]*models.Ride, error) {
	cacheKey := fmt.Sprintf("board:%s:%s", viewer.Role, viewer.UID)

	var cached []*models.Ride
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	var rides []*models.Ride
	var err error
	if viewer.Role == models.RoleDriver {
		rides, err = s.rides.ListDriverBoard(ctx, viewer.UID)
	} else {
		rides, err = s.rides.ListByRider(ctx, viewer.UID)
	}
	if err != nil {
		return nil, err
	}

	rides = s.filterForViewer(viewer, rides)
	SortBoard(viewer.Role, rides)

	s.cache.Set(ctx, cacheKey, rides, boardCacheTTL)

	return rides, nil
}

func (s *dashboardService) Subscribe(ctx context.Context) (interfaces.RideSubscription, error) {
	return s.rides.Watch(ctx)
}

func (s *dashboardService) VisibleTo(viewer Viewer, ride *models.Ride) bool {
	if ride == nil {
		return false
	}

	if viewer.Role == models.RoleDriver {
		if ride.Status == models.RideStatusCanceled {
			return false
		}
		if ride.Status == models.RideStatusPending && ride.DriverID == nil {
			return true
		}
		return ride.DriverID != nil && *ride.DriverID == viewer.UID
	}

	return ride.RiderID == viewer.UID
}

func (s *dashboardService) filterForViewer(viewer Viewer, rides []*models.Ride) []*models.Ride {
	filtered := rides[:0]
	for _, ride := range rides {
		if s.VisibleTo(viewer, ride) {
			filtered = append(filtered, ride)
		}
	}
	return filtered
}

// SortBoard orders rides by the role's status ranking. The input arrives
// newest-first from the store; the stable sort keeps that order within each
// rank.
func SortBoard(role models.UserRole, rides []*models.Ride) {
	ranks := riderStatusRank
	if role == models.RoleDriver {
		ranks = driverStatusRank
	}

	sort.SliceStable(rides, func(i, j int) bool {
		return statusRank(ranks, rides[i].Status) < statusRank(ranks, rides[j].Status)
	})
}

func statusRank(ranks map[models.RideStatus]int, status models.RideStatus) int {
	if rank, ok := ranks[status]; ok {
		return rank
	}
	return 99
}
