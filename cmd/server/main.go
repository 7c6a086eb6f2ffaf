package main

import (
	"context"
	"log"
	"net/http"

	"parampara/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"parampara/internal/auth"
	"parampara/internal/cache"
	"parampara/internal/config"
	"parampara/internal/db"
	"parampara/internal/enrich"
	"parampara/internal/handler"
	"parampara/internal/model"
	"parampara/internal/repository"
	"parampara/internal/router"
	"parampara/internal/service"
	"parampara/internal/storage"
	"parampara/internal/upload"
)

// @title Parampara API
// @version 1.0
// @description Crowdsourcing API for cultural content submissions with audio transcription and translation.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.LocationRecord{},
		&model.Submission{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unreachable at %s, sessions and stats cache degraded: %v", cfg.RedisAddr, err)
	}

	mediaStore, err := storage.NewMediaStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("media store init: %v", err)
	}
	uploadValidator := upload.NewValidator(cfg.MaxUploadSize)

	// External AI services
	transcriber := enrich.NewSpeechClient(cfg.SpeechServiceURL, enrich.WithTimeout(cfg.EnrichTimeout))
	translator := enrich.NewTranslateClient(cfg.TranslateServiceURL, enrich.WithTimeout(cfg.EnrichTimeout))

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	submissionRepo := repository.NewSubmissionRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SecretKey)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	locationService := service.NewLocationService(locationRepo)
	submissionService := service.NewSubmissionService(
		submissionRepo,
		uploadValidator,
		mediaStore,
		transcriber,
		translator,
		cacheClient,
		cfg.EnrichTimeout,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	locationHandler := handler.NewLocationHandler(locationService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	metaHandler := handler.NewMetaHandler()

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		locationHandler,
		submissionHandler,
		metaHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
