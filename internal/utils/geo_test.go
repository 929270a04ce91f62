package utils

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Point
		wantKm float64
		within float64
	}{
		{
			name:   "same point",
			a:      Point{Lat: 12.9716, Lng: 77.5946},
			b:      Point{Lat: 12.9716, Lng: 77.5946},
			wantKm: 0,
			within: 0.001,
		},
		{
			name:   "bengaluru to chennai",
			a:      Point{Lat: 12.9716, Lng: 77.5946},
			b:      Point{Lat: 13.0827, Lng: 80.2707},
			wantKm: 290,
			within: 10,
		},
		{
			name:   "bengaluru city to airport",
			a:      Point{Lat: 12.9716, Lng: 77.5946},
			b:      Point{Lat: 13.1989, Lng: 77.7068},
			wantKm: 28,
			within: 3,
		},
		{
			name:   "across the equator",
			a:      Point{Lat: 1, Lng: 10},
			b:      Point{Lat: -1, Lng: 10},
			wantKm: 222.4,
			within: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.within {
				t.Errorf("HaversineKm() = %.2f, want %.2f ± %.2f", got, tt.wantKm, tt.within)
			}
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := Point{Lat: 12.9716, Lng: 77.5946}
	b := Point{Lat: 13.1989, Lng: 77.7068}

	if d1, d2 := HaversineKm(a, b), HaversineKm(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance must be symmetric: %.9f vs %.9f", d1, d2)
	}
}

func TestRoadDistanceKm(t *testing.T) {
	a := Point{Lat: 12.9716, Lng: 77.5946}
	b := Point{Lat: 13.1989, Lng: 77.7068}
	base := HaversineKm(a, b)

	if got := RoadDistanceKm(a, b, 1.2); math.Abs(got-base*1.2) > 1e-9 {
		t.Errorf("RoadDistanceKm(1.2) = %.4f, want %.4f", got, base*1.2)
	}

	// Non-positive factors fall back to the raw distance.
	if got := RoadDistanceKm(a, b, 0); math.Abs(got-base) > 1e-9 {
		t.Errorf("RoadDistanceKm(0) = %.4f, want %.4f", got, base)
	}
}

func TestNewPointFromCoordinates(t *testing.T) {
	p := NewPointFromCoordinates([]float64{77.5946, 12.9716})
	if p.Lat != 12.9716 || p.Lng != 77.5946 {
		t.Errorf("NewPointFromCoordinates() = %+v, coordinates are [lng, lat]", p)
	}

	if p := NewPointFromCoordinates(nil); p != (Point{}) {
		t.Errorf("NewPointFromCoordinates(nil) = %+v, want zero point", p)
	}
}
