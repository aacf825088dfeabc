package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"depanku-backend/internal/config"
	"depanku-backend/internal/jobs"
	"depanku-backend/internal/logger"
	"depanku-backend/internal/moderation"
	fbplatform "depanku-backend/internal/platform/firebase"
	"depanku-backend/internal/repository"
	"depanku-backend/internal/repository/firestore"
	"depanku-backend/internal/repository/postgres"
	"depanku-backend/internal/scheduler"
	"depanku-backend/internal/search"
	"depanku-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'resync-search-index', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Depanku Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize Repositories
	var opportunityRepo repository.OpportunityRepository
	switch cfg.Database.Type {
	case "firestore":
		app, err := fbplatform.NewApp(ctx, cfg.Firebase)
		if err != nil {
			logger.Error("Failed to initialize Firebase app", "error", err)
			log.Fatalf("Failed to initialize Firebase app: %v", err)
		}
		store, err := firestore.NewStore(ctx, app)
		if err != nil {
			logger.Error("Failed to open Firestore store", "error", err)
			log.Fatalf("Failed to open Firestore store: %v", err)
		}
		defer store.Close()
		opportunityRepo = store.OpportunityRepository
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
	}

	// Initialize Services
	searchClient := search.NewAlgoliaClient(cfg.Search)
	gate := moderation.NewGeminiGate(ctx, cfg.Moderation)
	emailService := service.NewEmailService(cfg.Email)
	opportunityService := service.NewOpportunityService(opportunityRepo, searchClient, gate, emailService)

	jobServices := &jobs.Services{
		Opportunity: opportunityService,
		Email:       emailService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(opportunityRepo, searchClient, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "resync-search-index":
		jobRunner.ResyncSearchIndex()
	case "audit-search-index":
		jobRunner.AuditSearchIndex()
	case "all":
		jobRunner.RunAllJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - resync-search-index\n")
		fmt.Printf("  - audit-search-index\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
