package services

import (
	"errors"

	"taxihail/internal/repositories/interfaces"
)

// Precondition failures of the claim/transition protocol. These are normal,
// frequent outcomes of drivers racing each other, not exceptional
// conditions; their messages surface to the user verbatim.
var (
	ErrRideTaken         = errors.New("Ride already taken")
	ErrRideNotAvailable  = errors.New("Ride not available")
	ErrActiveRideExists  = errors.New("You already have an active ride")
	ErrNotRideOwner      = errors.New("Not your ride")
	ErrInvalidStatus     = errors.New("Invalid status")
	ErrInvalidTransition = errors.New("Invalid status change")
	ErrRideNotCancelable = errors.New("Ride can no longer be canceled")
)

var preconditionFailures = []error{
	ErrRideTaken,
	ErrRideNotAvailable,
	ErrActiveRideExists,
	ErrNotRideOwner,
	ErrInvalidStatus,
	ErrInvalidTransition,
	ErrRideNotCancelable,
}

var notFoundFailures = []error{
	interfaces.ErrRideNotFound,
	interfaces.ErrDriverNotFound,
}

// User-facing reasons for the not-found sentinels, which follow Go's
// lowercase error-string convention internally.
var notFoundMessages = map[error]string{
	interfaces.ErrRideNotFound:   "Ride not found",
	interfaces.ErrDriverNotFound: "Driver profile missing",
}

func IsNotFound(err error) bool {
	for _, sentinel := range notFoundFailures {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func IsPreconditionFailed(err error) bool {
	for _, sentinel := range preconditionFailures {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// FailureMessage maps a protocol error to the reason string handed to the
// caller. Anything outside the known taxonomy is a transient store or
// network failure; callers get a generic reason and may retry the whole
// operation, since every operation re-validates from scratch.
func FailureMessage(err error) string {
	for _, sentinel := range notFoundFailures {
		if errors.Is(err, sentinel) {
			return notFoundMessages[sentinel]
		}
	}
	for _, sentinel := range preconditionFailures {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Something went wrong. Please try again."
}
