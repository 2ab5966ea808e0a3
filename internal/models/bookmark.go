package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark links a user to an announcement they follow. One per
// (user, announcement) pair.
type Bookmark struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	AnnouncementID primitive.ObjectID `bson:"announcementId" json:"announcementId"`
	SavedAt        time.Time          `bson:"savedAt" json:"savedAt"`
}
