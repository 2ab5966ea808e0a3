package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"janazaboard/internal/models"
)

func TestOrderSavedAnnouncementsPreservesBookmarkOrder(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	bookmarks := []models.Bookmark{
		{AnnouncementID: second, SavedAt: time.Now()},
		{AnnouncementID: first, SavedAt: time.Now().Add(-time.Hour)},
	}
	announcements := []models.Announcement{
		{ID: first, DeceasedName: "First"},
		{ID: second, DeceasedName: "Second"},
	}

	ordered := orderSavedAnnouncements(bookmarks, announcements)
	if len(ordered) != 2 {
		t.Fatalf("expected 2 announcements, got %d", len(ordered))
	}
	if ordered[0].DeceasedName != "Second" || ordered[1].DeceasedName != "First" {
		t.Fatalf("expected savedAt order preserved, got %s then %s", ordered[0].DeceasedName, ordered[1].DeceasedName)
	}
}

func TestOrderSavedAnnouncementsDropsOrphans(t *testing.T) {
	existing := primitive.NewObjectID()
	deleted := primitive.NewObjectID()

	bookmarks := []models.Bookmark{
		{AnnouncementID: deleted},
		{AnnouncementID: existing},
	}
	announcements := []models.Announcement{
		{ID: existing, DeceasedName: "Still here"},
	}

	ordered := orderSavedAnnouncements(bookmarks, announcements)
	if len(ordered) != 1 || ordered[0].DeceasedName != "Still here" {
		t.Fatalf("expected orphaned bookmark to be dropped, got %v", ordered)
	}
}
