package services

import (
	"errors"
	"fmt"
	"testing"

	"taxihail/internal/repositories/interfaces"
)

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrRideTaken, "Ride already taken"},
		{ErrRideNotAvailable, "Ride not available"},
		{ErrActiveRideExists, "You already have an active ride"},
		{ErrNotRideOwner, "Not your ride"},
		{interfaces.ErrRideNotFound, "Ride not found"},
		{interfaces.ErrDriverNotFound, "Driver profile missing"},
		{fmt.Errorf("claim: %w", ErrRideTaken), "Ride already taken"},
		{errors.New("connection reset"), "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		if got := FailureMessage(tt.err); got != tt.want {
			t.Errorf("FailureMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrorClassification(t *testing.T) {
	if !IsPreconditionFailed(ErrRideTaken) {
		t.Error("ErrRideTaken must classify as a precondition failure")
	}
	if IsPreconditionFailed(interfaces.ErrRideNotFound) {
		t.Error("not-found must not classify as a precondition failure")
	}
	if !IsNotFound(fmt.Errorf("lookup: %w", interfaces.ErrDriverNotFound)) {
		t.Error("wrapped not-found must still classify")
	}
	if IsNotFound(errors.New("timeout")) || IsPreconditionFailed(errors.New("timeout")) {
		t.Error("transient errors must stay unclassified")
	}
}
