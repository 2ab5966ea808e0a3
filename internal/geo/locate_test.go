package geo

import "testing"

func TestResolveViewerUsesExplicitCoordinates(t *testing.T) {
	viewer := ResolveViewer("48.9", "2.4", "fr-FR")
	if !viewer.IsReal {
		t.Fatal("expected isReal=true for explicit coordinates")
	}
	if viewer.Coordinates.Lat != 48.9 || viewer.Coordinates.Lng != 2.4 {
		t.Fatalf("unexpected coordinates: %v", viewer.Coordinates)
	}
	if viewer.Label != "current position" {
		t.Fatalf("unexpected label: %s", viewer.Label)
	}
}

func TestResolveViewerFallsBackToLondonForUKLocale(t *testing.T) {
	viewer := ResolveViewer("", "", "en-GB,en;q=0.9")
	if viewer.IsReal {
		t.Fatal("expected isReal=false for fallback")
	}
	if viewer.Label != "London" {
		t.Fatalf("expected London fallback, got %s", viewer.Label)
	}
	if viewer.Coordinates != londonCenter {
		t.Fatalf("unexpected coordinates: %v", viewer.Coordinates)
	}
}

func TestResolveViewerFallsBackToParisOtherwise(t *testing.T) {
	for _, locale := range []string{"fr-FR,fr;q=0.9", "de-DE", "", "en-US,en;q=0.8"} {
		viewer := ResolveViewer("", "", locale)
		if viewer.IsReal || viewer.Label != "Paris" {
			t.Fatalf("expected Paris fallback for %q, got %+v", locale, viewer)
		}
	}
}

func TestResolveViewerRejectsPartialCoordinates(t *testing.T) {
	viewer := ResolveViewer("48.9", "", "fr-FR")
	if viewer.IsReal {
		t.Fatal("expected fallback when only one coordinate is supplied")
	}
}
