package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"janazaboard/internal/geo"
)

// Announcement is a single funeral-prayer posting.
type Announcement struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DeceasedName string             `bson:"deceasedName" json:"deceasedName"`
	PrayerTime   time.Time          `bson:"prayerTime" json:"prayerTime"`
	VenueName    string             `bson:"venueName" json:"venueName"`
	VenueAddress string             `bson:"venueAddress" json:"venueAddress"`
	Coordinates  geo.Coordinates    `bson:"coordinates" json:"coordinates"`
	CreatedBy    primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Derived, never persisted.
	DistanceKm    *float64 `bson:"-" json:"distanceKm,omitempty"`
	DirectionsURL string   `bson:"-" json:"directionsUrl,omitempty"`
}
