package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/imovia/imovia-backend/internal/cache"
	"github.com/imovia/imovia-backend/internal/router"
	"github.com/imovia/imovia-backend/pkg/config"
	"github.com/imovia/imovia-backend/pkg/firebase"
	"github.com/imovia/imovia-backend/validators"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Firebase login is optional; without credentials only local JWT auth
	// is available.
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	}

	// Same for the like-count cache.
	var countCache *cache.LikeCountCache
	if cfg.RedisAddr != "" {
		countCache, err = cache.NewLikeCountCache(cfg.RedisAddr, cfg.RedisPassword, 0)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer countCache.Close()
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuthClient, countCache)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
