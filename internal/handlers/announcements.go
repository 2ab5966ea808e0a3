package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"janazaboard/internal/geo"
	"janazaboard/internal/models"
)

type announcementRequest struct {
	DeceasedName string           `json:"deceasedName" binding:"required"`
	PrayerTime   time.Time        `json:"prayerTime" binding:"required"`
	VenueName    string           `json:"venueName" binding:"required"`
	VenueAddress string           `json:"venueAddress" binding:"required"`
	Coordinates  *geo.Coordinates `json:"coordinates" binding:"required"`
}

// validateAnnouncementInput enforces the persistence invariant: address and
// resolved coordinates must both be present.
func validateAnnouncementInput(req announcementRequest) string {
	if strings.TrimSpace(req.DeceasedName) == "" {
		return "deceasedName is required"
	}
	if req.PrayerTime.IsZero() {
		return "prayerTime is required"
	}
	if strings.TrimSpace(req.VenueName) == "" {
		return "venueName is required"
	}
	if strings.TrimSpace(req.VenueAddress) == "" {
		return "venueAddress is required"
	}
	if req.Coordinates == nil || (req.Coordinates.Lat == 0 && req.Coordinates.Lng == 0) {
		return "address has no resolved coordinates"
	}
	return ""
}

// fetchUpcoming returns all announcements whose prayerTime is at or after
// now, ordered ascending by prayerTime.
func fetchUpcoming(ctx context.Context, db *mongo.Database, now time.Time) ([]models.Announcement, error) {
	cursor, err := db.Collection("announcements").Find(ctx,
		bson.M{"prayerTime": bson.M{"$gte": now}},
		options.Find().SetSort(bson.D{{Key: "prayerTime", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	announcements := make([]models.Announcement, 0)
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// GetAnnouncements lists upcoming announcements, filtered and sorted by the
// query parameters. A store failure degrades to an empty list (or the sample
// set when enabled), never to an error response.
func GetAnnouncements(db *mongo.Database, sampleFallback bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		announcements, err := fetchUpcoming(ctx, db, now)
		degraded := false
		if err != nil {
			log.Println("[ANNOUNCEMENT] [ERROR] list failed, degrading:", err)
			degraded = true
			if sampleFallback {
				announcements = sampleAnnouncements(now)
			} else {
				announcements = []models.Announcement{}
			}
		}

		filter := parseFeedFilter(
			c.Query("search"),
			c.Query("period"),
			c.Query("distanceKm"),
			c.Query("lat"),
			c.Query("lng"),
			now,
		)

		result := decorateAnnouncements(applyFeedFilter(announcements, filter))
		c.JSON(http.StatusOK, gin.H{
			"data":     result,
			"count":    len(result),
			"bounds":   computeBounds(result),
			"degraded": degraded,
		})
	}
}

func GetAnnouncement(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var announcement models.Announcement
		if err := db.Collection("announcements").FindOne(ctx, bson.M{"_id": id}).Decode(&announcement); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
				return
			}
			log.Println("[ANNOUNCEMENT] [ERROR] get failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		announcement.DirectionsURL = directionsURL(announcement.Coordinates)
		c.JSON(http.StatusOK, gin.H{"data": announcement})
	}
}

func CreateAnnouncement(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[ANNOUNCEMENT] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req announcementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if msg := validateAnnouncementInput(req); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		now := time.Now()
		announcement := models.Announcement{
			DeceasedName: strings.TrimSpace(req.DeceasedName),
			PrayerTime:   req.PrayerTime,
			VenueName:    strings.TrimSpace(req.VenueName),
			VenueAddress: strings.TrimSpace(req.VenueAddress),
			Coordinates:  *req.Coordinates,
			CreatedBy:    userID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("announcements").InsertOne(ctx, announcement)
		if err != nil {
			log.Println("[ANNOUNCEMENT] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		announcement.ID = res.InsertedID.(primitive.ObjectID)
		announcement.DirectionsURL = directionsURL(announcement.Coordinates)

		log.Println("[ANNOUNCEMENT] [INFO] created:", announcement.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"data": announcement})
	}
}

// UpdateAnnouncement overwrites the five content fields plus updatedAt. Only
// the author may mutate the record.
func UpdateAnnouncement(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[ANNOUNCEMENT] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
			return
		}

		var req announcementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if msg := validateAnnouncementInput(req); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Announcement
		if err := db.Collection("announcements").FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
				return
			}
			log.Println("[ANNOUNCEMENT] [ERROR] update lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if existing.CreatedBy != userID {
			log.Println("[ANNOUNCEMENT] [ERROR] update denied, not owner:", id.Hex())
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		updatedAt := time.Now()
		_, err = db.Collection("announcements").UpdateByID(ctx, id, bson.M{
			"$set": bson.M{
				"deceasedName": strings.TrimSpace(req.DeceasedName),
				"prayerTime":   req.PrayerTime,
				"venueName":    strings.TrimSpace(req.VenueName),
				"venueAddress": strings.TrimSpace(req.VenueAddress),
				"coordinates":  req.Coordinates,
				"updatedAt":    updatedAt,
			},
		})
		if err != nil {
			log.Println("[ANNOUNCEMENT] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[ANNOUNCEMENT] [INFO] updated:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "announcement updated"})
	}
}

func DeleteAnnouncement(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[ANNOUNCEMENT] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Announcement
		if err := db.Collection("announcements").FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
				return
			}
			log.Println("[ANNOUNCEMENT] [ERROR] delete lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if existing.CreatedBy != userID {
			log.Println("[ANNOUNCEMENT] [ERROR] delete denied, not owner:", id.Hex())
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		if _, err := db.Collection("announcements").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			log.Println("[ANNOUNCEMENT] [ERROR] delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[ANNOUNCEMENT] [INFO] deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "announcement deleted"})
	}
}

// GetMyAnnouncements lists the caller's own postings, newest first.
func GetMyAnnouncements(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[ANNOUNCEMENT] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("announcements").Find(ctx,
			bson.M{"createdBy": userID},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			log.Println("[ANNOUNCEMENT] [ERROR] list my posts failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		announcements := make([]models.Announcement, 0)
		if err := cursor.All(ctx, &announcements); err != nil {
			log.Println("[ANNOUNCEMENT] [ERROR] decode my posts failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": decorateAnnouncements(announcements), "count": len(announcements)})
	}
}
