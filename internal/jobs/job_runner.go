package jobs

import (
	"depanku-backend/internal/config"
	"depanku-backend/internal/logger"
	"depanku-backend/internal/repository"
	"depanku-backend/internal/search"
	"depanku-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repo     repository.OpportunityRepository
	index    search.Client
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Opportunity service.OpportunityService
	Email       service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repo repository.OpportunityRepository, index search.Client, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repo:     repo,
		index:    index,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every scheduled job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.ResyncSearchIndex()
	jr.AuditSearchIndex()
}
