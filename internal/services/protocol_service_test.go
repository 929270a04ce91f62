package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"taxihail/internal/models"
	"taxihail/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClaimRide(t *testing.T) {
	ctx := context.Background()

	t.Run("claims a pending ride", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		rideID := f.addRide("r1", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); err != nil {
			t.Fatalf("ClaimRide() error = %v", err)
		}

		ride := f.ride(rideID)
		if ride.Status != models.RideStatusAssigned {
			t.Errorf("status = %s, want assigned", ride.Status)
		}
		if ride.DriverID == nil || *ride.DriverID != "d1" {
			t.Errorf("driver_id = %v, want d1", ride.DriverID)
		}
		if ride.DriverName == nil || *ride.DriverName != "Ravi" {
			t.Errorf("driver_name = %v, want Ravi", ride.DriverName)
		}
		if ride.Vehicle == nil {
			t.Error("vehicle should be denormalized onto the ride")
		}
		if ride.AssignedAt == nil {
			t.Error("assigned_at should be stamped")
		}
	})

	t.Run("rejects a taken ride", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		f.addDriver("d2", "Anil")
		rideID := f.addRide("r1", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); err != nil {
			t.Fatalf("first claim error = %v", err)
		}

		err := f.protocol.ClaimRide(ctx, rideID, "d2")
		if !errors.Is(err, ErrRideTaken) {
			t.Errorf("second claim error = %v, want ErrRideTaken", err)
		}

		ride := f.ride(rideID)
		if *ride.DriverID != "d1" {
			t.Errorf("driver_id = %s, the first claimer must keep the ride", *ride.DriverID)
		}
	})

	t.Run("re-claim by the holder is also rejected", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		rideID := f.addRide("r1", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); err != nil {
			t.Fatalf("first claim error = %v", err)
		}

		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); !errors.Is(err, ErrRideTaken) {
			t.Errorf("re-claim error = %v, want ErrRideTaken", err)
		}
	})

	t.Run("rejects a non-pending unclaimed ride", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		rideID := f.addRide("r1", models.RideStatusCanceled)

		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); !errors.Is(err, ErrRideNotAvailable) {
			t.Errorf("error = %v, want ErrRideNotAvailable", err)
		}
	})

	t.Run("rejects a second active ride", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		first := f.addRide("r1", models.RideStatusPending)
		second := f.addRide("r2", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, first, "d1"); err != nil {
			t.Fatalf("first claim error = %v", err)
		}

		if err := f.protocol.ClaimRide(ctx, second, "d1"); !errors.Is(err, ErrActiveRideExists) {
			t.Errorf("second claim error = %v, want ErrActiveRideExists", err)
		}

		if ride := f.ride(second); ride.Status != models.RideStatusPending {
			t.Errorf("second ride status = %s, want pending", ride.Status)
		}
	})

	t.Run("in_progress ride still blocks new claims", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		first := f.addRide("r1", models.RideStatusPending)
		second := f.addRide("r2", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, first, "d1"); err != nil {
			t.Fatalf("claim error = %v", err)
		}
		if err := f.protocol.AdvanceStatus(ctx, first, "d1", models.RideStatusInProgress); err != nil {
			t.Fatalf("advance error = %v", err)
		}

		if err := f.protocol.ClaimRide(ctx, second, "d1"); !errors.Is(err, ErrActiveRideExists) {
			t.Errorf("claim error = %v, want ErrActiveRideExists", err)
		}
	})

	t.Run("completed ride frees the driver", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		first := f.addRide("r1", models.RideStatusPending)
		second := f.addRide("r2", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, first, "d1"); err != nil {
			t.Fatalf("claim error = %v", err)
		}
		if err := f.protocol.AdvanceStatus(ctx, first, "d1", models.RideStatusInProgress); err != nil {
			t.Fatalf("advance error = %v", err)
		}
		if err := f.protocol.AdvanceStatus(ctx, first, "d1", models.RideStatusCompleted); err != nil {
			t.Fatalf("complete error = %v", err)
		}

		if err := f.protocol.ClaimRide(ctx, second, "d1"); err != nil {
			t.Errorf("claim after completion error = %v", err)
		}
	})

	t.Run("unknown ride", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")

		err := f.protocol.ClaimRide(ctx, primitive.NewObjectID(), "d1")
		if !errors.Is(err, interfaces.ErrRideNotFound) {
			t.Errorf("error = %v, want ErrRideNotFound", err)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		f := newProtocolFixture()
		rideID := f.addRide("r1", models.RideStatusPending)

		err := f.protocol.ClaimRide(ctx, rideID, "ghost")
		if !errors.Is(err, interfaces.ErrDriverNotFound) {
			t.Errorf("error = %v, want ErrDriverNotFound", err)
		}
	})
}

func TestClaimRideConcurrent(t *testing.T) {
	// N drivers race for one ride; exactly one claim may win and everyone
	// else must see "Ride already taken".
	const drivers = 16

	f := newProtocolFixture()
	rideID := f.addRide("r1", models.RideStatusPending)

	uids := make([]string, drivers)
	for i := range uids {
		uids[i] = string(rune('a' + i))
		f.addDriver(uids[i], "Driver "+uids[i])
	}

	results := make([]error, drivers)
	var wg sync.WaitGroup
	for i, uid := range uids {
		wg.Add(1)
		go func(i int, uid string) {
			defer wg.Done()
			results[i] = f.protocol.ClaimRide(context.Background(), rideID, uid)
		}(i, uid)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrRideTaken):
		default:
			t.Errorf("unexpected claim error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("winners = %d, want exactly 1", wins)
	}

	ride := f.ride(rideID)
	if ride.Status != models.RideStatusAssigned || ride.DriverID == nil {
		t.Fatalf("ride = %+v, want assigned with a driver", ride)
	}
}

func TestAdvanceStatus(t *testing.T) {
	ctx := context.Background()

	claimed := func(t *testing.T) (*protocolFixture, primitive.ObjectID) {
		t.Helper()
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		rideID := f.addRide("r1", models.RideStatusPending)
		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); err != nil {
			t.Fatalf("claim error = %v", err)
		}
		return f, rideID
	}

	t.Run("assigned to in_progress to completed", func(t *testing.T) {
		f, rideID := claimed(t)

		if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusInProgress); err != nil {
			t.Fatalf("start error = %v", err)
		}
		if got := f.ride(rideID).Status; got != models.RideStatusInProgress {
			t.Errorf("status = %s, want in_progress", got)
		}

		if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusCompleted); err != nil {
			t.Fatalf("complete error = %v", err)
		}
		if got := f.ride(rideID).Status; got != models.RideStatusCompleted {
			t.Errorf("status = %s, want completed", got)
		}
	})

	t.Run("completing bumps the driver counter", func(t *testing.T) {
		f, rideID := claimed(t)

		if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusInProgress); err != nil {
			t.Fatalf("start error = %v", err)
		}
		if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusCompleted); err != nil {
			t.Fatalf("complete error = %v", err)
		}

		if got := f.store.drivers["d1"].CompletedRides; got != 1 {
			t.Errorf("completed_rides = %d, want 1", got)
		}
	})

	t.Run("skipping in_progress is rejected", func(t *testing.T) {
		f, rideID := claimed(t)

		err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusCompleted)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("same status is a no-op success", func(t *testing.T) {
		f, rideID := claimed(t)

		if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusInProgress); err != nil {
			t.Fatalf("start error = %v", err)
		}
		if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusInProgress); err != nil {
			t.Errorf("repeated start error = %v, want nil", err)
		}
		if got := f.store.drivers["d1"].CompletedRides; got != 0 {
			t.Errorf("completed_rides = %d, want 0", got)
		}
	})

	t.Run("only the owner may advance", func(t *testing.T) {
		f, rideID := claimed(t)
		f.addDriver("d2", "Anil")

		err := f.protocol.AdvanceStatus(ctx, rideID, "d2", models.RideStatusInProgress)
		if !errors.Is(err, ErrNotRideOwner) {
			t.Errorf("error = %v, want ErrNotRideOwner", err)
		}
	})

	t.Run("rejects statuses outside the protocol", func(t *testing.T) {
		f, rideID := claimed(t)

		for _, status := range []models.RideStatus{models.RideStatusPending, models.RideStatusCanceled, "teleported"} {
			if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", status); !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("AdvanceStatus(%q) error = %v, want ErrInvalidStatus", status, err)
			}
		}
	})
}

func TestReleaseRide(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the ride to the pool", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		f.addDriver("d2", "Anil")
		rideID := f.addRide("r1", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); err != nil {
			t.Fatalf("claim error = %v", err)
		}
		if err := f.protocol.ReleaseRide(ctx, rideID, "d1"); err != nil {
			t.Fatalf("release error = %v", err)
		}

		ride := f.ride(rideID)
		if ride.Status != models.RideStatusPending {
			t.Errorf("status = %s, want pending", ride.Status)
		}
		if ride.DriverID != nil || ride.DriverName != nil || ride.Vehicle != nil || ride.AssignedAt != nil {
			t.Errorf("driver fields not cleared: %+v", ride)
		}

		// The released ride is claimable again, by anyone.
		if err := f.protocol.ClaimRide(ctx, rideID, "d2"); err != nil {
			t.Errorf("re-claim error = %v", err)
		}
	})

	t.Run("release frees the driver for a new claim", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		first := f.addRide("r1", models.RideStatusPending)
		second := f.addRide("r2", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, first, "d1"); err != nil {
			t.Fatalf("claim error = %v", err)
		}
		if err := f.protocol.ReleaseRide(ctx, first, "d1"); err != nil {
			t.Fatalf("release error = %v", err)
		}
		if err := f.protocol.ClaimRide(ctx, second, "d1"); err != nil {
			t.Errorf("claim after release error = %v", err)
		}
	})

	t.Run("only the owner may release", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		f.addDriver("d2", "Anil")
		rideID := f.addRide("r1", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); err != nil {
			t.Fatalf("claim error = %v", err)
		}

		if err := f.protocol.ReleaseRide(ctx, rideID, "d2"); !errors.Is(err, ErrNotRideOwner) {
			t.Errorf("error = %v, want ErrNotRideOwner", err)
		}
	})

	t.Run("completed rides cannot be released", func(t *testing.T) {
		f := newProtocolFixture()
		f.addDriver("d1", "Ravi")
		rideID := f.addRide("r1", models.RideStatusPending)

		if err := f.protocol.ClaimRide(ctx, rideID, "d1"); err != nil {
			t.Fatalf("claim error = %v", err)
		}
		if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusInProgress); err != nil {
			t.Fatalf("start error = %v", err)
		}
		if err := f.protocol.AdvanceStatus(ctx, rideID, "d1", models.RideStatusCompleted); err != nil {
			t.Fatalf("complete error = %v", err)
		}

		if err := f.protocol.ReleaseRide(ctx, rideID, "d1"); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})
}

// Full lifecycle: book, race, lose, release, re-claim, complete.
func TestClaimProtocolScenario(t *testing.T) {
	ctx := context.Background()

	f := newProtocolFixture()
	f.addDriver("d1", "Ravi")
	f.addDriver("d2", "Anil")
	rideID := f.addRide("r1", models.RideStatusPending)

	if err := f.protocol.ClaimRide(ctx, rideID, "d1"); err != nil {
		t.Fatalf("d1 claim error = %v", err)
	}
	if err := f.protocol.ClaimRide(ctx, rideID, "d2"); !errors.Is(err, ErrRideTaken) {
		t.Fatalf("d2 claim error = %v, want ErrRideTaken", err)
	}

	if err := f.protocol.ReleaseRide(ctx, rideID, "d1"); err != nil {
		t.Fatalf("d1 release error = %v", err)
	}
	if err := f.protocol.ClaimRide(ctx, rideID, "d2"); err != nil {
		t.Fatalf("d2 re-claim error = %v", err)
	}

	if err := f.protocol.AdvanceStatus(ctx, rideID, "d2", models.RideStatusInProgress); err != nil {
		t.Fatalf("d2 start error = %v", err)
	}
	if err := f.protocol.AdvanceStatus(ctx, rideID, "d2", models.RideStatusCompleted); err != nil {
		t.Fatalf("d2 complete error = %v", err)
	}

	ride := f.ride(rideID)
	if ride.Status != models.RideStatusCompleted || *ride.DriverID != "d2" {
		t.Fatalf("final ride = %+v, want completed by d2", ride)
	}
	if got := f.store.drivers["d2"].CompletedRides; got != 1 {
		t.Errorf("d2 completed_rides = %d, want 1", got)
	}
	if got := f.store.drivers["d1"].CompletedRides; got != 0 {
		t.Errorf("d1 completed_rides = %d, want 0", got)
	}
}
