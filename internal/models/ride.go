package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string
type RideType string

const (
	RideStatusPending    RideStatus = "pending"
	RideStatusAssigned   RideStatus = "assigned"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCanceled   RideStatus = "canceled"

	RideTypeOneWay    RideType = "oneway"
	RideTypeRoundTrip RideType = "roundtrip"
	RideTypeLocal     RideType = "local"
	RideTypeAirport   RideType = "airport"
)

// Ride is the central document of the system. It is created once by the
// rider and afterwards mutated only through the claim/transition protocol,
// always inside a store transaction. Cancellation is a status value, not a
// deletion; completed and canceled are terminal.
type Ride struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RiderID     string             `json:"rider_id" bson:"rider_id" validate:"required"`
	DriverID    *string            `json:"driver_id" bson:"driver_id"`
	DriverName  *string            `json:"driver_name" bson:"driver_name"`
	Vehicle     *Vehicle           `json:"vehicle" bson:"vehicle"`
	RideType    RideType           `json:"ride_type" bson:"ride_type" validate:"required"`
	Status      RideStatus         `json:"status" bson:"status" default:"pending"`
	Pickup      *Location          `json:"pickup" bson:"pickup"`
	Drop        *Location          `json:"drop" bson:"drop"`
	PickupAt    time.Time          `json:"pickup_at" bson:"pickup_at"`
	ReturnAt    *time.Time         `json:"return_at" bson:"return_at"`
	EstimatedKm float64            `json:"estimated_km" bson:"estimated_km"`
	Fare        float64            `json:"fare" bson:"fare"`
	Currency    string             `json:"currency" bson:"currency" default:"INR"`
	Notes       string             `json:"notes" bson:"notes"`
	AssignedAt  *time.Time         `json:"assigned_at" bson:"assigned_at"`
	CanceledAt  *time.Time         `json:"canceled_at" bson:"canceled_at"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// ActiveStatuses are the statuses during which a ride occupies its driver.
// A driver holds at most one ride in these statuses at any time.
var ActiveStatuses = []RideStatus{RideStatusAssigned, RideStatusInProgress}

// forwardTransitions is the legal successor for each non-terminal claimed
// status. Transitions are monotonic; the only backward move is an explicit
// release, which is not expressed here.
var forwardTransitions = map[RideStatus]RideStatus{
	RideStatusAssigned:   RideStatusInProgress,
	RideStatusInProgress: RideStatusCompleted,
}

// CanAdvanceTo reports whether a ride currently in status "from" may move
// forward to "to".
func CanAdvanceTo(from, to RideStatus) bool {
	return forwardTransitions[from] == to
}

// IsActive reports whether the status counts against the driver's
// single-active-ride limit.
func (s RideStatus) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further protocol operation may touch the ride.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCanceled
}

func (t RideType) Valid() bool {
	switch t {
	case RideTypeOneWay, RideTypeRoundTrip, RideTypeLocal, RideTypeAirport:
		return true
	}
	return false
}

// RideEventType tags a change-stream event on the rides collection.
type RideEventType string

const (
	RideEventCreated RideEventType = "ride_created"
	RideEventUpdated RideEventType = "ride_updated"
)

// RideEvent is one element of a live ride subscription. Ride carries the
// full post-image of the document.
type RideEvent struct {
	Type RideEventType `json:"type"`
	Ride *Ride         `json:"ride"`
}
