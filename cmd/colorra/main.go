package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/colorra-dev/colorra/db"
	"github.com/colorra-dev/colorra/internal/auth"
	"github.com/colorra-dev/colorra/internal/config"
	"github.com/colorra-dev/colorra/internal/handlers"
	"github.com/colorra-dev/colorra/internal/logging"
	"github.com/colorra-dev/colorra/internal/mailer"
	"github.com/colorra-dev/colorra/internal/middleware"
	"github.com/colorra-dev/colorra/internal/router"
	"github.com/colorra-dev/colorra/internal/storage"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New()

	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.Connect(cfg.DatabaseDSN)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var store storage.FileStorage

	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3FileStorage(cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey)
	default:
		store, err = storage.NewLocalFileStorage(cfg.UploadDir)
	}

	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	authManager := auth.NewManager(cfg.JWTSecret)
	mail := mailer.New(cfg, logger)
	h := handlers.New(conn, cfg, authManager, store, mail, logger)

	// Credential endpoints get a tighter per-IP budget than the rest of
	// the API.
	authLimiter := middleware.NewRateLimiter(rate.Every(time.Minute/10), 10)
	defer authLimiter.Stop()

	r := router.New(h, authManager, conn, authLimiter)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
