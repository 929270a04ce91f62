package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taxihail/internal/config"
	handlers "taxihail/internal/handlers/shared"
	"taxihail/internal/middleware"
	"taxihail/internal/repositories/mongodb"
	"taxihail/internal/services"
	"taxihail/internal/utils"
	"taxihail/pkg/cache"
	"taxihail/pkg/database"
	"taxihail/pkg/logger"
	"taxihail/pkg/maps"
	"taxihail/pkg/websocket"
	"taxihail/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to MongoDB and apply schema migrations
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	// Redis is optional; without it boards are read straight from Mongo
	cacheService := services.NewNoopCacheService()
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()
		cacheService = services.NewCacheService(redisCache, appLogger)
	}

	// Repositories and services
	rideRepo := mongodb.NewRideRepository(db.Database)
	driverRepo := mongodb.NewDriverRepository(db.Database)

	protocolService := services.NewRideProtocolService(rideRepo, driverRepo, db, appLogger)
	bookingService := services.NewBookingService(rideRepo, db, services.FareConfig{
		RatePerKm:  cfg.Fare.RatePerKm,
		RoadFactor: cfg.Fare.RoadFactor,
		Currency:   cfg.Fare.Currency,
	}, appLogger)
	dashboardService := services.NewDashboardService(rideRepo, cacheService, appLogger)
	driverService := services.NewDriverService(driverRepo, appLogger)

	verifier, jwtIssuer, err := buildVerifier(cfg.Auth)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize auth provider")
	}

	placeProvider, err := buildPlaceProvider(cfg.Maps)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize maps provider")
	}

	// Live dashboard fan-out
	hub := websocket.NewHub()
	go hub.Run()

	streamCtx, stopStream := context.WithCancel(context.Background())
	defer stopStream()
	broadcaster := services.NewRideBroadcaster(dashboardService, hub, appLogger)
	go broadcaster.Run(streamCtx)

	// Handlers
	rideHandler := handlers.NewRideHandler(bookingService, dashboardService)
	driverHandler := handlers.NewDriverHandler(protocolService, driverService, dashboardService)
	dashboardHandler := handlers.NewDashboardHandler(driverService, hub, appLogger)
	placeHandler := handlers.NewPlaceHandler(placeProvider)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupRideRoutes(v1, rideHandler, verifier)
		routes.SetupDriverRoutes(v1, driverHandler, verifier, driverService)
		routes.SetupDashboardRoutes(v1, dashboardHandler, placeHandler, verifier)

		if jwtIssuer != nil {
			routes.SetupAuthRoutes(v1, handlers.NewAuthHandler(jwtIssuer), verifier)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"app":     utils.AppName,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
	stopStream()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}

// buildVerifier wires the configured token verifier. The JWT issuer is
// returned separately so the local session route is only mounted when the
// JWT provider is active.
func buildVerifier(cfg *config.AuthConfig) (services.TokenVerifier, *services.JWTVerifier, error) {
	switch cfg.Provider {
	case "firebase":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		verifier, err := services.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return verifier, nil, nil

	case "jwt":
		issuer := services.NewJWTVerifier(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
		return issuer, issuer, nil

	default:
		return nil, nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

func buildPlaceProvider(cfg *config.MapsConfig) (maps.Provider, error) {
	if cfg.Provider == "google" {
		return maps.NewGoogleMapsProvider(cfg.GoogleAPIKey, cfg.CountryCode)
	}
	return maps.NewNominatimProvider(cfg.NominatimBaseURL, cfg.CountryCode, cfg.UserAgent), nil
}
