package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"janazaboard/internal/config"
	"janazaboard/internal/database"
	"janazaboard/internal/geo"
	"janazaboard/internal/handlers"
	"janazaboard/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureAnnouncementIndexes(db); err != nil {
		log.Printf("⚠️ announcement index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureBookmarkIndexes(db); err != nil {
		log.Printf("⚠️ bookmark index warning: %v", err)
	}
	if err := database.EnsureRefreshTokenIndexes(db); err != nil {
		log.Printf("⚠️ refresh token index warning: %v", err)
	}

	geocodeCache := geo.NewGeocodeCache(config.AppEnv.RedisAddr)
	resolver := geo.NewResolver(
		config.AppEnv.GeoProvider,
		config.AppEnv.NominatimBaseURL,
		config.AppEnv.GoogleMapsAPIKey,
		config.AppEnv.GeocodeCountries,
		geocodeCache,
	)

	liveFeed := handlers.NewLiveFeed(db, config.AppEnv.SampleFallback)
	go liveFeed.Run(context.Background())

	r := gin.Default()
	r.Use(cors.Default())

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/refresh", handlers.Refresh(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/announcements", handlers.GetAnnouncements(db, config.AppEnv.SampleFallback))
	r.GET("/announcements/:id", handlers.GetAnnouncement(db))
	r.POST("/announcements", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.CreateAnnouncement(db))
	r.PUT("/announcements/:id", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.UpdateAnnouncement(db))
	r.DELETE("/announcements/:id", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.DeleteAnnouncement(db))

	r.GET("/ws/announcements", liveFeed.Handle())

	r.GET("/geo/locate", handlers.Locate())
	r.GET("/geo/geocode", handlers.GeocodeAddress(resolver))
	r.GET("/geo/suggest", handlers.SuggestAddresses(resolver))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/announcements", handlers.GetMyAnnouncements(db))
		user.GET("/bookmarks", handlers.GetSavedAnnouncements(db))
		user.GET("/bookmarks/:announcementId", handlers.GetBookmarkStatus(db))
		user.POST("/bookmarks/toggle", handlers.ToggleBookmark(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
