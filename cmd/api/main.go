package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/medville/medjobs/internal/auth"
	"github.com/medville/medjobs/internal/config"
	"github.com/medville/medjobs/internal/database"
	"github.com/medville/medjobs/internal/handlers"
	"github.com/medville/medjobs/internal/middleware"
	"github.com/medville/medjobs/internal/services"
	"github.com/medville/medjobs/internal/store"
)

func main() {
	// 1. Load Environment Variables (.env is optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "medjobs-api").Logger()

	// 2. Database Connection, Migrations and Status Catalog Seed
	db := database.Connect(cfg)
	st := store.NewPostgres(db)
	if err := database.Seed(context.Background(), st); err != nil {
		log.Fatal("Failed to seed status catalog:", err)
	}

	// 3. Initialize Core Services
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	cityService := services.NewCityService(st, st)
	jobService := services.NewJobService(st, st)
	applicationService := services.NewApplicationService(st, logger)
	authService := services.NewAuthService(st, st, tokens)

	// 4. Initialize Handlers
	cityHandler := handlers.NewCityHandler(cityService)
	jobHandler := handlers.NewJobHandler(jobService, applicationService)
	authHandler := handlers.NewAuthHandler(authService)
	dataHandler := handlers.NewDataHandler(cfg.CommunesFile)

	// 5. Setup Router, CORS and Request Logging
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.RequestLogger(logger))

	// 6. Define Routes
	handlers.RegisterRoutes(r, cityHandler, jobHandler, authHandler, dataHandler, tokens)

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
