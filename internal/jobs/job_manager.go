package jobs

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"deliverus/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	serviceTimeJob *ServiceTimeJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(db *gorm.DB, uowFactory commands.UoWFactory, logger *slog.Logger) *JobManager {
	return &JobManager{
		serviceTimeJob: NewServiceTimeJob(db, uowFactory, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.serviceTimeJob.Start(); err != nil {
		return fmt.Errorf("failed to start service time job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.serviceTimeJob.Stop()
}
