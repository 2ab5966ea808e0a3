package handlers

import (
	"testing"
	"time"

	"janazaboard/internal/geo"
)

func validAnnouncementRequest() announcementRequest {
	return announcementRequest{
		DeceasedName: "Mohamed Ali",
		PrayerTime:   time.Now().Add(4 * time.Hour),
		VenueName:    "Grande Mosquée de Lyon",
		VenueAddress: "146 Boulevard Pinel, 69008 Lyon",
		Coordinates:  &geo.Coordinates{Lat: 45.7485, Lng: 4.8866},
	}
}

func TestValidateAnnouncementInputAccepts(t *testing.T) {
	if msg := validateAnnouncementInput(validAnnouncementRequest()); msg != "" {
		t.Fatalf("expected valid request, got %q", msg)
	}
}

func TestValidateAnnouncementInputRejectsEmptyAddress(t *testing.T) {
	req := validAnnouncementRequest()
	req.VenueAddress = "   "
	if msg := validateAnnouncementInput(req); msg == "" {
		t.Fatal("expected rejection when venueAddress is empty")
	}
}

func TestValidateAnnouncementInputRejectsUnresolvedCoordinates(t *testing.T) {
	req := validAnnouncementRequest()
	req.Coordinates = nil
	if msg := validateAnnouncementInput(req); msg == "" {
		t.Fatal("expected rejection when coordinates are missing")
	}

	req = validAnnouncementRequest()
	req.Coordinates = &geo.Coordinates{}
	if msg := validateAnnouncementInput(req); msg == "" {
		t.Fatal("expected rejection when coordinates were never resolved")
	}
}

func TestValidateAnnouncementInputRejectsBlankNames(t *testing.T) {
	req := validAnnouncementRequest()
	req.DeceasedName = " "
	if msg := validateAnnouncementInput(req); msg == "" {
		t.Fatal("expected rejection when deceasedName is blank")
	}

	req = validAnnouncementRequest()
	req.VenueName = ""
	if msg := validateAnnouncementInput(req); msg == "" {
		t.Fatal("expected rejection when venueName is blank")
	}
}
