package router

import (
	"context"
	"log"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kamaumbugua/socialnet/backend/internal/handlers"
	"github.com/kamaumbugua/socialnet/backend/internal/middleware"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
	"github.com/kamaumbugua/socialnet/backend/internal/storage"
	"github.com/kamaumbugua/socialnet/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = HTTPErrorHandler
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *mongo.Database, authClient *fbauth.Client, authService handlers.AuthService, blobStore storage.BlobStore, cfg *config.Config) {
	if err := repositories.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Println("MongoDB indexes ensured for all collections.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	postRepo := repositories.NewMongoPostRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	likeRepo := repositories.NewMongoLikeRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)
	messageRepo := repositories.NewMongoMessageRepository(db)

	authMW := middleware.AuthMiddleware(authClient, userRepo, cfg.JWTSecret)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(userRepo, authService, cfg.JWTSecret, cfg.DefaultImageURL())
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, commentRepo)
	postHandler.RegisterPostRoutes(e, authMW)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(e, authMW)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, commentRepo)
	likeHandler.RegisterLikeRoutes(e, authMW)
	log.Println("Like routes configured.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, postRepo, likeRepo, notificationRepo, blobStore)
	userHandler.RegisterUserRoutes(e, authMW)
	log.Println("User profile routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(e, authMW)
	log.Println("Notification routes configured.")

	// Message routes
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo)
	messageHandler.RegisterMessageRoutes(e, authMW)
	log.Println("Message routes configured.")

	log.Println("All routes configured.")
}
