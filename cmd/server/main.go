package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/web3grant/Slushy/internal/auth"
	"github.com/web3grant/Slushy/internal/database"
	"github.com/web3grant/Slushy/internal/handlers"
	"github.com/web3grant/Slushy/internal/metadata"
	"github.com/web3grant/Slushy/internal/services"
	"github.com/web3grant/Slushy/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start the background referral writer
	tracker := services.NewReferralTracker(database.DB)
	tracker.Start()

	setupGracefulShutdown(tracker)

	setupServer(tracker)
}

func setupGracefulShutdown(tracker *services.ReferralTracker) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received shutdown signal, gracefully shutting down...")

		tracker.Stop()
		database.Close()

		log.Println("Shutdown complete")
		os.Exit(0)
	}()
}

func setupServer(tracker *services.ReferralTracker) {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Avatar object store, served statically under /media
	storageRoot := os.Getenv("STORAGE_ROOT")
	if storageRoot == "" {
		storageRoot = "./media"
	}
	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	store := storage.NewLocalStore(storageRoot, baseURL+"/media")

	// Initialize services
	tokens := auth.NewTokenIssuerFromEnv()
	extractor := metadata.NewExtractor()
	profileService := services.NewProfileService(database.DB)
	linkService := services.NewLinkService(database.DB, extractor)
	avatarService := services.NewAvatarService(profileService, store)

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, tokens)
	metadataHandler := handlers.NewMetadataHandler(extractor)
	linkHandler := handlers.NewLinkHandler(linkService, tracker)
	avatarHandler := handlers.NewAvatarHandler(avatarService, tokens)

	// Health check
	r.GET("/health", profileHandler.HealthCheck)

	// Serve stored avatar files
	r.Static("/media", storageRoot)

	api := r.Group("/api")
	{
		api.POST("/session", profileHandler.CreateSession)

		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.UpdateProfile)
		api.POST("/profile/avatar", avatarHandler.UploadAvatar)

		api.GET("/metadata", metadataHandler.GetSiteMetadata)

		api.POST("/profiles/:id/projects", linkHandler.AddProject)
		api.DELETE("/projects/:id", linkHandler.DeleteProject)
		api.POST("/profiles/:id/apps", linkHandler.AddFavoriteApp)
		api.DELETE("/apps/:id", linkHandler.DeleteFavoriteApp)

		api.POST("/referrals", linkHandler.RecordReferral)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
