package services

import (
	"context"
	"sync"
	"time"

	"taxihail/internal/models"
	"taxihail/internal/repositories/interfaces"
	"taxihail/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the Mongo repositories. Together
// with serialTx it gives the protocol the same guarantee the real store
// does: transaction callbacks never interleave.
type memStore struct {
	mu      sync.Mutex
	rides   map[primitive.ObjectID]*models.Ride
	order   []primitive.ObjectID
	drivers map[string]*models.DriverProfile
}

func newMemStore() *memStore {
	return &memStore{
		rides:   make(map[primitive.ObjectID]*models.Ride),
		drivers: make(map[string]*models.DriverProfile),
	}
}

// serialTx serializes transaction callbacks behind the store mutex.
type serialTx struct {
	store *memStore
}

func (t *serialTx) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(ctx)
}

func cloneRide(ride *models.Ride) *models.Ride {
	clone := *ride
	return &clone
}

type memRideRepo struct {
	store *memStore
}

func (r *memRideRepo) Create(ctx context.Context, ride *models.Ride) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ride.ID = primitive.NewObjectID()
	ride.CreatedAt = time.Now()
	r.store.rides[ride.ID] = cloneRide(ride)
	r.store.order = append(r.store.order, ride.ID)
	return nil
}

func (r *memRideRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	ride, ok := r.store.rides[id]
	if !ok {
		return nil, interfaces.ErrRideNotFound
	}
	return cloneRide(ride), nil
}

func (r *memRideRepo) HasActiveRide(ctx context.Context, driverUID string) (bool, error) {
	for _, ride := range r.store.rides {
		if ride.DriverID != nil && *ride.DriverID == driverUID && ride.Status.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRideRepo) Assign(ctx context.Context, id primitive.ObjectID, driver *models.DriverProfile) error {
	ride, ok := r.store.rides[id]
	if !ok {
		return interfaces.ErrRideNotFound
	}

	now := time.Now()
	uid := driver.UID
	name := driver.DisplayName
	if name == "" {
		name = "Unknown Driver"
	}

	ride.DriverID = &uid
	ride.DriverName = &name
	ride.Vehicle = driver.Vehicle
	ride.Status = models.RideStatusAssigned
	ride.AssignedAt = &now
	return nil
}

func (r *memRideRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RideStatus) error {
	ride, ok := r.store.rides[id]
	if !ok {
		return interfaces.ErrRideNotFound
	}
	ride.Status = status
	return nil
}

func (r *memRideRepo) Release(ctx context.Context, id primitive.ObjectID) error {
	ride, ok := r.store.rides[id]
	if !ok {
		return interfaces.ErrRideNotFound
	}

	ride.Status = models.RideStatusPending
	ride.DriverID = nil
	ride.DriverName = nil
	ride.Vehicle = nil
	ride.AssignedAt = nil
	return nil
}

func (r *memRideRepo) Cancel(ctx context.Context, id primitive.ObjectID) error {
	ride, ok := r.store.rides[id]
	if !ok {
		return interfaces.ErrRideNotFound
	}

	now := time.Now()
	ride.Status = models.RideStatusCanceled
	ride.CanceledAt = &now
	return nil
}

func (r *memRideRepo) ListByRider(ctx context.Context, riderUID string) ([]*models.Ride, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var rides []*models.Ride
	for i := len(r.store.order) - 1; i >= 0; i-- {
		ride := r.store.rides[r.store.order[i]]
		if ride.RiderID == riderUID {
			rides = append(rides, cloneRide(ride))
		}
	}
	return rides, nil
}

func (r *memRideRepo) ListDriverBoard(ctx context.Context, driverUID string) ([]*models.Ride, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var rides []*models.Ride
	for i := len(r.store.order) - 1; i >= 0; i-- {
		ride := r.store.rides[r.store.order[i]]
		unclaimed := ride.Status == models.RideStatusPending && ride.DriverID == nil
		mine := ride.DriverID != nil && *ride.DriverID == driverUID
		if unclaimed || mine {
			rides = append(rides, cloneRide(ride))
		}
	}
	return rides, nil
}

type memSubscription struct {
	events chan models.RideEvent
	once   sync.Once
}

func (s *memSubscription) Events() <-chan models.RideEvent { return s.events }

func (s *memSubscription) Close(ctx context.Context) error {
	s.once.Do(func() { close(s.events) })
	return nil
}

func (r *memRideRepo) Watch(ctx context.Context) (interfaces.RideSubscription, error) {
	return &memSubscription{events: make(chan models.RideEvent, 16)}, nil
}

type memDriverRepo struct {
	store *memStore
}

func (r *memDriverRepo) GetByUID(ctx context.Context, uid string) (*models.DriverProfile, error) {
	profile, ok := r.store.drivers[uid]
	if !ok {
		return nil, interfaces.ErrDriverNotFound
	}
	clone := *profile
	return &clone, nil
}

func (r *memDriverRepo) Upsert(ctx context.Context, profile *models.DriverProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clone := *profile
	r.store.drivers[profile.UID] = &clone
	return nil
}

func (r *memDriverRepo) SetAvailability(ctx context.Context, uid string, available bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	profile, ok := r.store.drivers[uid]
	if !ok {
		return interfaces.ErrDriverNotFound
	}
	profile.Available = available
	return nil
}

func (r *memDriverRepo) IncrementCompletedRides(ctx context.Context, uid string) error {
	profile, ok := r.store.drivers[uid]
	if !ok {
		return interfaces.ErrDriverNotFound
	}
	profile.CompletedRides++
	return nil
}

// protocolFixture wires a protocol service over the in-memory store.
type protocolFixture struct {
	store    *memStore
	rides    *memRideRepo
	drivers  *memDriverRepo
	protocol RideProtocolService
}

func newProtocolFixture() *protocolFixture {
	store := newMemStore()
	rides := &memRideRepo{store: store}
	drivers := &memDriverRepo{store: store}

	return &protocolFixture{
		store:    store,
		rides:    rides,
		drivers:  drivers,
		protocol: NewRideProtocolService(rides, drivers, &serialTx{store: store}, logger.NewNop()),
	}
}

func (f *protocolFixture) addDriver(uid, name string) {
	f.store.drivers[uid] = &models.DriverProfile{
		UID:         uid,
		DisplayName: name,
		Role:        models.RoleDriver,
		Vehicle:     &models.Vehicle{Model: "Swift Dzire", Plate: "KA01AB1234", Color: "White"},
	}
}

func (f *protocolFixture) addRide(riderUID string, status models.RideStatus) primitive.ObjectID {
	ride := &models.Ride{
		RiderID:   riderUID,
		RideType:  models.RideTypeOneWay,
		Status:    status,
		CreatedAt: time.Now(),
	}
	_ = (&memRideRepo{store: f.store}).Create(context.Background(), ride)
	f.store.rides[ride.ID].Status = status
	return ride.ID
}

func (f *protocolFixture) ride(id primitive.ObjectID) *models.Ride {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return cloneRide(f.store.rides[id])
}
