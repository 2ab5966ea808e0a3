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

	"janazaboard/internal/models"
)

type bookmarkToggleRequest struct {
	AnnouncementID string `json:"announcementId" binding:"required"`
}

// GetBookmarkStatus reports whether the caller saved the announcement.
func GetBookmarkStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[BOOKMARK] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		announcementID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("announcementId")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcementId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var bookmark models.Bookmark
		err = db.Collection("bookmarks").FindOne(ctx, bson.M{
			"userId":         userID,
			"announcementId": announcementID,
		}).Decode(&bookmark)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusOK, gin.H{"saved": false, "bookmarkId": nil})
				return
			}
			log.Println("[BOOKMARK] [ERROR] status lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"saved": true, "bookmarkId": bookmark.ID.Hex()})
	}
}

// ToggleBookmark creates the join record when absent and deletes it when
// present. The existence check and the write are not atomic; the unique
// (userId, announcementId) index catches the duplicate-create case.
func ToggleBookmark(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[BOOKMARK] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req bookmarkToggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		announcementID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.AnnouncementID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcementId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Bookmark
		err = db.Collection("bookmarks").FindOne(ctx, bson.M{
			"userId":         userID,
			"announcementId": announcementID,
		}).Decode(&existing)

		if err == nil {
			if _, err := db.Collection("bookmarks").DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
				log.Println("[BOOKMARK] [ERROR] delete failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			log.Println("[BOOKMARK] [INFO] removed:", existing.ID.Hex())
			c.JSON(http.StatusOK, gin.H{"saved": false})
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Println("[BOOKMARK] [ERROR] toggle lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		// Creating: verify the target still exists first.
		if err := db.Collection("announcements").FindOne(ctx, bson.M{"_id": announcementID}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcementId"})
				return
			}
			log.Println("[BOOKMARK] [ERROR] announcement lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		bookmark := models.Bookmark{
			UserID:         userID,
			AnnouncementID: announcementID,
			SavedAt:        time.Now(),
		}
		res, err := db.Collection("bookmarks").InsertOne(ctx, bookmark)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusOK, gin.H{"saved": true})
				return
			}
			log.Println("[BOOKMARK] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[BOOKMARK] [INFO] saved:", res.InsertedID.(primitive.ObjectID).Hex())
		c.JSON(http.StatusCreated, gin.H{"saved": true})
	}
}

// GetSavedAnnouncements lists the caller's bookmarked announcements, most
// recently saved first. Bookmarks whose announcement no longer exists are
// silently dropped.
func GetSavedAnnouncements(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[BOOKMARK] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("bookmarks").Find(ctx,
			bson.M{"userId": userID},
			options.Find().SetSort(bson.D{{Key: "savedAt", Value: -1}}),
		)
		if err != nil {
			log.Println("[BOOKMARK] [ERROR] list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		bookmarks := make([]models.Bookmark, 0)
		if err := cursor.All(ctx, &bookmarks); err != nil {
			log.Println("[BOOKMARK] [ERROR] decode bookmarks failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if len(bookmarks) == 0 {
			c.JSON(http.StatusOK, gin.H{"data": []models.Announcement{}, "count": 0})
			return
		}

		ids := make([]primitive.ObjectID, 0, len(bookmarks))
		for _, bookmark := range bookmarks {
			ids = append(ids, bookmark.AnnouncementID)
		}

		annCursor, err := db.Collection("announcements").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			log.Println("[BOOKMARK] [ERROR] resolve announcements failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer annCursor.Close(ctx)

		announcements := make([]models.Announcement, 0, len(ids))
		if err := annCursor.All(ctx, &announcements); err != nil {
			log.Println("[BOOKMARK] [ERROR] decode announcements failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		ordered := orderSavedAnnouncements(bookmarks, announcements)
		c.JSON(http.StatusOK, gin.H{"data": decorateAnnouncements(ordered), "count": len(ordered)})
	}
}

// orderSavedAnnouncements resolves bookmarks to announcements preserving the
// bookmark order and silently dropping orphans.
func orderSavedAnnouncements(bookmarks []models.Bookmark, announcements []models.Announcement) []models.Announcement {
	byID := make(map[primitive.ObjectID]models.Announcement, len(announcements))
	for _, announcement := range announcements {
		byID[announcement.ID] = announcement
	}

	ordered := make([]models.Announcement, 0, len(announcements))
	for _, bookmark := range bookmarks {
		if announcement, exists := byID[bookmark.AnnouncementID]; exists {
			ordered = append(ordered, announcement)
		}
	}
	return ordered
}
