// File: internal/jobs/orphan_sweep.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohit-R-04/FarmToMarket/internal/config"
	"github.com/Mohit-R-04/FarmToMarket/internal/integrity"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrphanSweepJob periodically runs the orphan sweep so rows left behind by
// crashed cascades do not accumulate.
type OrphanSweepJob struct {
	integrityService integrity.Service
	logger           *zap.Logger
	cfg              *config.Config
	cronScheduler    *cron.Cron
}

// NewOrphanSweepJob creates a new OrphanSweepJob.
func NewOrphanSweepJob(
	integrityService integrity.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *OrphanSweepJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &OrphanSweepJob{
		integrityService: integrityService,
		logger:           logger.Named("OrphanSweepJob"),
		cfg:              cfg,
		cronScheduler:    scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *OrphanSweepJob) SetupAndStart() error {
	jobSpec := j.cfg.OrphanSweepJobSchedule // e.g., "@hourly", "0 3 * * *"
	if jobSpec == "" {
		j.logger.Warn("Orphan sweep job schedule not defined (ORPHAN_SWEEP_JOB_SCHEDULE). Job will not run.")
		return nil // Not a fatal error, just won't run
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule orphan sweep job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Orphan sweep job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *OrphanSweepJob) runJob() {
	j.logger.Info("Starting orphan sweep job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := j.integrityService.CleanupOrphans(ctx)
	if err != nil {
		j.logger.Error("Orphan sweep job run failed", zap.Error(err))
	} else {
		j.logger.Info("Orphan sweep job run completed", zap.Int64("rows_deleted", result.Total()))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *OrphanSweepJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping orphan sweep job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Orphan sweep job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Orphan sweep job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
