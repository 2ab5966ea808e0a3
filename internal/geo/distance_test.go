package geo

import (
	"math"
	"testing"
)

func TestDistanceIsZeroAtIdentity(t *testing.T) {
	points := []Coordinates{
		{Lat: 48.8566, Lng: 2.3522},
		{Lat: 0, Lng: 0},
		{Lat: -33.8688, Lng: 151.2093},
	}
	for _, p := range points {
		if got := Distance(p, p); got != 0 {
			t.Fatalf("expected zero distance for identical points %v, got %v", p, got)
		}
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	paris := Coordinates{Lat: 48.8566, Lng: 2.3522}
	london := Coordinates{Lat: 51.5074, Lng: -0.1278}

	ab := Distance(paris, london)
	ba := Distance(london, paris)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %v and %v", ab, ba)
	}
}

func TestDistanceParisLondon(t *testing.T) {
	paris := Coordinates{Lat: 48.8566, Lng: 2.3522}
	london := Coordinates{Lat: 51.5074, Lng: -0.1278}

	got := Distance(paris, london)
	if math.Abs(got-344) > 2 {
		t.Fatalf("expected Paris-London distance ~344km, got %v", got)
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	paris := Coordinates{Lat: 48.8566, Lng: 2.3522}
	bad := Coordinates{Lat: math.NaN(), Lng: 2.3522}

	if got := Distance(paris, bad); !math.IsNaN(got) {
		t.Fatalf("expected NaN for NaN input, got %v", got)
	}
}
