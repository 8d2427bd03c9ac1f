package router

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/imovia/imovia-backend/internal/cache"
	"github.com/imovia/imovia-backend/internal/handlers"
	"github.com/imovia/imovia-backend/internal/middleware"
	"github.com/imovia/imovia-backend/internal/models"
	"github.com/imovia/imovia-backend/internal/repositories"
	"github.com/imovia/imovia-backend/internal/services"
	"github.com/imovia/imovia-backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, countCache *cache.LikeCountCache) {
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	mongoDB := mgClient.Database(cfg.MongoDatabase)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	listingRepo := repositories.NewMongoListingRepository(mongoDB)
	likeRepo := repositories.NewMongoLikeRepository(mongoDB)

	// The unique index on (userId, listingId) is what makes likes race-free;
	// refuse to start without it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := likeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create like indexes: %v", err)
	}

	likeService := services.NewLikeService(likeRepo, listingRepo)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	public := e.Group("/api/v1")
	likeHandler := handlers.NewLikeHandler(likeService, countCache)
	likeHandler.RegisterPublicLikeRoutes(public)

	listingHandler := handlers.NewListingHandler(listingRepo)
	listingHandler.RegisterListingRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	likeHandler.RegisterLikeRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	log.Println("All routes configured.")
}
