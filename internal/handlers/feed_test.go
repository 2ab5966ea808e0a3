package handlers

import (
	"testing"
	"time"

	"janazaboard/internal/geo"
	"janazaboard/internal/models"
)

func testAnnouncements(now time.Time) []models.Announcement {
	return []models.Announcement{
		{
			DeceasedName: "Amine Ben Ahmed",
			VenueName:    "Grande Mosquée de Paris",
			PrayerTime:   now.Add(1 * time.Hour),
			Coordinates:  geo.Coordinates{Lat: 48.8421, Lng: 2.3556},
		},
		{
			DeceasedName: "Fatima Zahra",
			VenueName:    "Mosquée de Gennevilliers",
			PrayerTime:   now.Add(25 * time.Hour),
			Coordinates:  geo.Coordinates{Lat: 48.9284, Lng: 2.2989},
		},
		{
			DeceasedName: "Ibrahim Diallo",
			VenueName:    "Mosquée de Créteil",
			PrayerTime:   now.Add(6 * 24 * time.Hour),
			Coordinates:  geo.Coordinates{Lat: 48.7758, Lng: 2.4578},
		},
	}
}

func TestApplyFeedFilterNoConstraintsKeepsAll(t *testing.T) {
	now := time.Now()
	list := testAnnouncements(now)

	got := applyFeedFilter(list, FeedFilter{Now: now})
	if len(got) != len(list) {
		t.Fatalf("expected %d announcements, got %d", len(list), len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].PrayerTime.Before(got[i-1].PrayerTime) {
			t.Fatal("expected chronological ascending order")
		}
	}
}

func TestApplyFeedFilterSearchIsCaseInsensitive(t *testing.T) {
	now := time.Now()
	list := testAnnouncements(now)

	got := applyFeedFilter(list, FeedFilter{Search: "ahmed", Now: now})
	if len(got) != 1 || got[0].DeceasedName != "Amine Ben Ahmed" {
		t.Fatalf("expected single match on deceased name, got %v", got)
	}

	got = applyFeedFilter(list, FeedFilter{Search: "CRÉTEIL", Now: now})
	if len(got) != 1 || got[0].VenueName != "Mosquée de Créteil" {
		t.Fatalf("expected single match on venue name, got %v", got)
	}
}

func TestApplyFeedFilterPeriodToday(t *testing.T) {
	now := time.Now()
	list := testAnnouncements(now)

	got := applyFeedFilter(list, FeedFilter{Period: "today", Now: now})
	for _, item := range got {
		if item.DeceasedName == "Fatima Zahra" {
			t.Fatal("expected now+25h record to be excluded from today")
		}
	}
	found := false
	for _, item := range got {
		if item.DeceasedName == "Amine Ben Ahmed" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected now+1h record to be included in today")
	}
}

func TestApplyFeedFilterPeriodWeek(t *testing.T) {
	now := time.Now()
	list := testAnnouncements(now)

	got := applyFeedFilter(list, FeedFilter{Period: "week", Now: now})
	if len(got) != 3 {
		t.Fatalf("expected all three records within a week, got %d", len(got))
	}
}

func TestApplyFeedFilterDistanceExcludesAndSorts(t *testing.T) {
	now := time.Now()
	viewer := geo.Coordinates{Lat: 48.8566, Lng: 2.3522} // Paris center

	near := models.Announcement{
		DeceasedName: "Near",
		PrayerTime:   now.Add(3 * time.Hour),
		Coordinates:  geo.Coordinates{Lat: 48.8421, Lng: 2.3556}, // ~2km
	}
	mid := models.Announcement{
		DeceasedName: "Mid",
		PrayerTime:   now.Add(1 * time.Hour),
		Coordinates:  geo.Coordinates{Lat: 48.9284, Lng: 2.2989}, // ~9km
	}
	far := models.Announcement{
		DeceasedName: "Far",
		PrayerTime:   now.Add(2 * time.Hour),
		Coordinates:  geo.Coordinates{Lat: 48.7100, Lng: 2.6000}, // ~25km
	}

	got := applyFeedFilter([]models.Announcement{far, near, mid}, FeedFilter{
		DistanceKm: 10,
		Viewer:     &viewer,
		Now:        now,
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 announcements within 10km, got %d", len(got))
	}
	if got[0].DeceasedName != "Near" || got[1].DeceasedName != "Mid" {
		t.Fatalf("expected distance ascending order, got %s then %s", got[0].DeceasedName, got[1].DeceasedName)
	}
	if got[0].DistanceKm == nil || got[1].DistanceKm == nil {
		t.Fatal("expected distanceKm to be populated")
	}
}

func TestApplyFeedFilterIsIdempotentAndSubset(t *testing.T) {
	now := time.Now()
	viewer := geo.Coordinates{Lat: 48.8566, Lng: 2.3522}
	list := testAnnouncements(now)

	filter := FeedFilter{Search: "mosquée", Period: "week", DistanceKm: 25, Viewer: &viewer, Now: now}
	once := applyFeedFilter(list, filter)
	twice := applyFeedFilter(once, filter)

	if len(once) > len(list) {
		t.Fatal("filter output must be a subset of the input")
	}
	if len(twice) != len(once) {
		t.Fatalf("expected idempotent filtering, got %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].DeceasedName != twice[i].DeceasedName {
			t.Fatal("expected identical result on repeated application")
		}
	}
}

func TestParseFeedFilterRejectsUnknownDistance(t *testing.T) {
	filter := parseFeedFilter("", "", "7", "48.85", "2.35", time.Now())
	if filter.DistanceKm != 0 {
		t.Fatalf("expected unknown distance threshold to be ignored, got %v", filter.DistanceKm)
	}
	if filter.Viewer == nil {
		t.Fatal("expected viewer coordinates to be parsed")
	}
}

func TestComputeBounds(t *testing.T) {
	now := time.Now()
	bounds := computeBounds(testAnnouncements(now))
	if bounds == nil {
		t.Fatal("expected bounds for non-empty list")
	}
	if bounds.MinLat != 48.7758 || bounds.MaxLat != 48.9284 {
		t.Fatalf("unexpected lat bounds: %+v", bounds)
	}
	if bounds.MinLng != 2.2989 || bounds.MaxLng != 2.4578 {
		t.Fatalf("unexpected lng bounds: %+v", bounds)
	}

	if computeBounds(nil) != nil {
		t.Fatal("expected nil bounds for empty list")
	}
}

func TestDirectionsURL(t *testing.T) {
	got := directionsURL(geo.Coordinates{Lat: 48.8421, Lng: 2.3556})
	want := "https://www.google.com/maps/dir/?api=1&destination=48.8421,2.3556"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
