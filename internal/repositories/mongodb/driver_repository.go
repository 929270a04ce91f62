package mongodb

import (
	"context"
	"fmt"
	"time"

	"taxihail/internal/models"
	"taxihail/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type driverRepository struct {
	collection *mongo.Collection
}

func NewDriverRepository(db *mongo.Database) interfaces.DriverRepository {
	return &driverRepository{
		collection: db.Collection("users"),
	}
}

func (r *driverRepository) GetByUID(ctx context.Context, uid string) (*models.DriverProfile, error) {
	var profile models.DriverProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *driverRepository) Upsert(ctx context.Context, profile *models.DriverProfile) error {
	updates := bson.M{
		"display_name": profile.DisplayName,
		"email":        profile.Email,
		"phone":        profile.Phone,
		"role":         profile.Role,
		"vehicle":      profile.Vehicle,
		"available":    profile.Available,
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": profile.UID},
		bson.M{
			"$set": updates,
			"$setOnInsert": bson.M{
				"completed_rides": int64(0),
				"rating":          float64(0),
				"created_at":      time.Now(),
			},
			"$currentDate": bson.M{"updated_at": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func (r *driverRepository) SetAvailability(ctx context.Context, uid string, available bool) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": uid},
		bson.M{
			"$set":         bson.M{"available": available},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrDriverNotFound
	}

	return nil
}

func (r *driverRepository) IncrementCompletedRides(ctx context.Context, uid string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": uid},
		bson.M{
			"$inc":         bson.M{"completed_rides": 1},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment completed rides: %w", err)
	}

	return nil
}
