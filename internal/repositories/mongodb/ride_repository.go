package mongodb

import (
	"context"
	"fmt"

	"taxihail/internal/models"
	"taxihail/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rideRepository struct {
	collection *mongo.Collection
}

func NewRideRepository(db *mongo.Database) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
	}
}

// Create inserts the ride through an upsert so created_at can be stamped
// with $currentDate, i.e. the server clock rather than this process's clock.
func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	if ride.ID.IsZero() {
		ride.ID = primitive.NewObjectID()
	}
	ride.Status = models.RideStatusPending
	ride.DriverID = nil

	doc := bson.M{
		"rider_id":     ride.RiderID,
		"driver_id":    nil,
		"driver_name":  nil,
		"vehicle":      nil,
		"ride_type":    ride.RideType,
		"status":       ride.Status,
		"pickup":       ride.Pickup,
		"drop":         ride.Drop,
		"pickup_at":    ride.PickupAt,
		"return_at":    ride.ReturnAt,
		"estimated_km": ride.EstimatedKm,
		"fare":         ride.Fare,
		"currency":     ride.Currency,
		"notes":        ride.Notes,
		"assigned_at":  nil,
		"canceled_at":  nil,
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": ride.ID},
		bson.M{
			"$setOnInsert": doc,
			"$currentDate": bson.M{"created_at": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	return &ride, nil
}

func (r *rideRepository) HasActiveRide(ctx context.Context, driverUID string) (bool, error) {
	filter := bson.M{
		"driver_id": driverUID,
		"status":    bson.M{"$in": models.ActiveStatuses},
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to query active rides: %w", err)
	}

	return count > 0, nil
}

func (r *rideRepository) Assign(ctx context.Context, id primitive.ObjectID, driver *models.DriverProfile) error {
	name := driver.DisplayName
	if name == "" {
		name = "Unknown Driver"
	}

	updates := bson.M{
		"driver_id":   driver.UID,
		"driver_name": name,
		"vehicle":     driver.Vehicle,
		"status":      models.RideStatusAssigned,
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":         updates,
			"$currentDate": bson.M{"assigned_at": true},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to assign ride: %w", err)
	}

	return nil
}

func (r *rideRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RideStatus) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update ride status: %w", err)
	}

	return nil
}

func (r *rideRepository) Release(ctx context.Context, id primitive.ObjectID) error {
	updates := bson.M{
		"status":      models.RideStatusPending,
		"driver_id":   nil,
		"driver_name": nil,
		"vehicle":     nil,
		"assigned_at": nil,
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to release ride: %w", err)
	}

	return nil
}

func (r *rideRepository) Cancel(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":         bson.M{"status": models.RideStatusCanceled},
			"$currentDate": bson.M{"canceled_at": true},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel ride: %w", err)
	}

	return nil
}

func (r *rideRepository) ListByRider(ctx context.Context, riderUID string) ([]*models.Ride, error) {
	return r.findRides(ctx, bson.M{"rider_id": riderUID})
}

func (r *rideRepository) ListDriverBoard(ctx context.Context, driverUID string) ([]*models.Ride, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"status": models.RideStatusPending, "driver_id": nil},
			{"driver_id": driverUID},
		},
	}
	return r.findRides(ctx, filter)
}

func (r *rideRepository) findRides(ctx context.Context, filter bson.M) ([]*models.Ride, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			return nil, fmt.Errorf("failed to decode ride: %w", err)
		}
		rides = append(rides, &ride)
	}

	return rides, cursor.Err()
}

// Watch tails the rides change stream with update lookups so every event
// carries the full post-image of the document.
func (r *rideRepository) Watch(ctx context.Context) (interfaces.RideSubscription, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": []string{"insert", "update", "replace"}},
		}}},
	}

	stream, err := r.collection.Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, fmt.Errorf("failed to open ride change stream: %w", err)
	}

	sub := &rideSubscription{
		stream: stream,
		events: make(chan models.RideEvent, 64),
		done:   make(chan struct{}),
	}
	go sub.pump(ctx)

	return sub, nil
}

type rideSubscription struct {
	stream *mongo.ChangeStream
	events chan models.RideEvent
	done   chan struct{}
}

func (s *rideSubscription) pump(ctx context.Context) {
	defer close(s.events)

	for s.stream.Next(ctx) {
		var change struct {
			OperationType string      `bson:"operationType"`
			FullDocument  models.Ride `bson:"fullDocument"`
		}
		if err := s.stream.Decode(&change); err != nil {
			continue
		}

		eventType := models.RideEventUpdated
		if change.OperationType == "insert" {
			eventType = models.RideEventCreated
		}

		ride := change.FullDocument
		select {
		case s.events <- models.RideEvent{Type: eventType, Ride: &ride}:
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *rideSubscription) Events() <-chan models.RideEvent {
	return s.events
}

func (s *rideSubscription) Close(ctx context.Context) error {
	close(s.done)
	return s.stream.Close(ctx)
}
