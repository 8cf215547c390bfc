package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
	"github.com/kamaumbugua/socialnet/backend/internal/router"
	"github.com/kamaumbugua/socialnet/backend/internal/storage"
	"github.com/kamaumbugua/socialnet/backend/internal/triggers"
	"github.com/kamaumbugua/socialnet/backend/pkg/config"
	"github.com/kamaumbugua/socialnet/backend/pkg/firebase"
	"github.com/kamaumbugua/socialnet/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	client, err := config.InitDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(client)
	db := client.Database(cfg.MongoDatabase)

	// Initialize Firebase
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	blobStore := storage.NewBucketStore(firebaseApp.Bucket, cfg.StorageBucket)
	router.SetupRoutes(e, db, firebaseApp.AuthClient, firebaseApp, blobStore, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start the change watcher: it consumes the store's changefeed and runs
	// the compensating writes for counters and notifications, resuming from
	// the last checkpoint across restarts
	watcher := triggers.NewWatcher(db,
		triggers.NewReactions(repositories.NewMongoTriggerStore(db)),
		repositories.NewMongoCheckpointStore(db))
	go watcher.Run(ctx)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
