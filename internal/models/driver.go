package models

import (
	"time"
)

type UserRole string

const (
	RoleRider  UserRole = "rider"
	RoleDriver UserRole = "driver"
)

// DriverProfile lives in the users collection, keyed by the auth principal's
// UID. Riders get a profile with Role=rider at registration; driver accounts
// carry the vehicle and availability fields on top.
//
// The claim protocol reads this document but never writes it directly. The
// only indirect write is the completed-rides counter, bumped inside the
// same transaction that moves a ride to completed.
type DriverProfile struct {
	UID            string    `json:"uid" bson:"_id" validate:"required"`
	DisplayName    string    `json:"display_name" bson:"display_name"`
	Email          string    `json:"email" bson:"email"`
	Phone          string    `json:"phone" bson:"phone"`
	Role           UserRole  `json:"role" bson:"role" default:"rider"`
	Vehicle        *Vehicle  `json:"vehicle" bson:"vehicle"`
	Available      bool      `json:"available" bson:"available" default:"false"`
	CompletedRides int64     `json:"completed_rides" bson:"completed_rides" default:"0"`
	Rating         float64   `json:"rating" bson:"rating" default:"0"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

func (p *DriverProfile) IsDriver() bool {
	return p.Role == RoleDriver
}
