package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureAnnouncementIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("announcements").Indexes()

	prayerTimeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "prayerTime", Value: 1}},
		Options: options.Index().SetName("prayerTime_index"),
	}
	createdByIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdBy_createdAt_index"),
	}

	log.Println("EnsureAnnouncementIndexes: creating prayerTime and createdBy indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{prayerTimeIndex, createdByIndex})
	if err != nil {
		log.Println("EnsureAnnouncementIndexes: index error:", err)
		return err
	}
	log.Println("EnsureAnnouncementIndexes: indexes created")
	return nil
}

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureBookmarkIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("bookmarks").Indexes()

	// The toggle is check-then-act; this index catches the duplicate-create
	// arm of a concurrent double toggle.
	pairIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "announcementId", Value: 1}},
		Options: options.Index().
			SetName("userId_announcementId_unique").
			SetUnique(true),
	}

	log.Println("EnsureBookmarkIndexes: creating userId_announcementId_unique index")
	_, err := indexes.CreateOne(ctx, pairIndex)
	if err != nil {
		log.Println("EnsureBookmarkIndexes: pair index error:", err)
		return err
	}
	log.Println("EnsureBookmarkIndexes: userId_announcementId_unique index created")
	return nil
}

func EnsureRefreshTokenIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("refresh_tokens").Indexes()

	tokenHashIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "tokenHash", Value: 1}},
		Options: options.Index().SetName("tokenHash_index"),
	}

	log.Println("EnsureRefreshTokenIndexes: creating tokenHash_index index")
	_, err := indexes.CreateOne(ctx, tokenHashIndex)
	if err != nil {
		log.Println("EnsureRefreshTokenIndexes: tokenHash index error:", err)
		return err
	}
	log.Println("EnsureRefreshTokenIndexes: tokenHash_index index created")
	return nil
}
