package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	firebase "firebase.google.com/go/v4"
	_ "github.com/lib/pq"

	httpapi "depanku-backend/internal/api/http"
	"depanku-backend/internal/config"
	"depanku-backend/internal/logger"
	"depanku-backend/internal/moderation"
	fbplatform "depanku-backend/internal/platform/firebase"
	"depanku-backend/internal/repository"
	"depanku-backend/internal/repository/firestore"
	"depanku-backend/internal/repository/postgres"
	"depanku-backend/internal/search"
	"depanku-backend/internal/security"
	"depanku-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Depanku Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "type", cfg.Database.Type)

	ctx := context.Background()

	// The Firebase app backs both the Firestore store and the Firebase
	// token verifier; open it only when one of them is selected.
	firebaseApp := newFirebaseAppIfNeeded(ctx, cfg)

	// Initialize Repositories
	var (
		opportunityRepo repository.OpportunityRepository
		applicationRepo repository.ApplicationRepository
	)
	switch cfg.Database.Type {
	case "firestore":
		store, err := firestore.NewStore(ctx, firebaseApp)
		if err != nil {
			logger.Error("Failed to open Firestore store", "error", err)
			log.Fatalf("Failed to open Firestore store: %v", err)
		}
		defer store.Close()
		opportunityRepo = store.OpportunityRepository
		applicationRepo = store.ApplicationRepository
		logger.Info("Firestore connection established", "project_id", cfg.Firebase.ProjectID)
	default:
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")

		store := postgres.NewStore(db)
		opportunityRepo = store.OpportunityRepository
		applicationRepo = store.ApplicationRepository
	}

	// Initialize Security
	var verifier security.TokenVerifier
	if cfg.Auth.Mode == "local" {
		verifier = security.NewLocalVerifier(cfg.Auth.JWTSecret)
		logger.Info("Using local JWT token verification")
	} else {
		verifier, err = security.NewFirebaseVerifier(ctx, firebaseApp)
		if err != nil {
			logger.Error("Failed to initialize Firebase token verifier", "error", err)
			log.Fatalf("Failed to initialize Firebase token verifier: %v", err)
		}
		logger.Info("Using Firebase token verification")
	}

	// Initialize Search, Moderation and Email
	searchClient := search.NewAlgoliaClient(cfg.Search)
	gate := moderation.NewGeminiGate(ctx, cfg.Moderation)
	emailSvc := service.NewEmailService(cfg.Email)

	// Initialize Services
	opportunitySvc := service.NewOpportunityService(opportunityRepo, searchClient, gate, emailSvc)
	applicationSvc := service.NewApplicationService(applicationRepo, opportunityRepo)

	// Set up HTTP server
	router := httpapi.NewRouter(opportunitySvc, applicationSvc, verifier)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

func newFirebaseAppIfNeeded(ctx context.Context, cfg *config.Config) *firebase.App {
	if cfg.Database.Type != "firestore" && cfg.Auth.Mode == "local" {
		return nil
	}
	app, err := fbplatform.NewApp(ctx, cfg.Firebase)
	if err != nil {
		logger.Error("Failed to initialize Firebase app", "error", err)
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}
	return app
}
