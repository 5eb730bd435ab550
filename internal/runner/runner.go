package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

var (
	ErrFailedToCreateScheduler = errors.New("failed to create scheduler")
	ErrJobAlreadyExists        = errors.New("job already registered")
	ErrFailedToCreateJob       = errors.New("failed to create job")
)

// Runner manages scheduled maintenance job executions
type Runner struct {
	scheduler gocron.Scheduler
	jobs      map[string]gocron.Job
	tasks     map[string]func()
	mu        sync.RWMutex
}

// NewRunner creates a new scheduler runner
func NewRunner() (*Runner, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithGlobalJobOptions(
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		),
	)

	if err != nil {
		log.Error().Err(err).Msg("Failed to create scheduler")
		return nil, ErrFailedToCreateScheduler
	}

	return &Runner{
		scheduler: scheduler,
		jobs:      make(map[string]gocron.Job),
		tasks:     make(map[string]func()),
	}, nil
}

// RegisterJob adds a named task to the runner. Cron expressions include a
// seconds field. An empty schedule registers the task for manual runs only.
func (r *Runner) RegisterJob(name, cronSchedule string, task func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[name]; exists {
		log.Error().Str("job", name).Msg("Job already registered")
		return ErrJobAlreadyExists
	}

	r.tasks[name] = task

	if cronSchedule == "" {
		log.Warn().Str("job", name).Msg("No cron schedule provided, manual runs only")
		return nil
	}

	job, err := r.scheduler.NewJob(
		gocron.CronJob(
			cronSchedule,
			true,
		),
		gocron.NewTask(
			r.executeJob,
			name,
		),
		gocron.WithName("job_"+name),
		gocron.WithTags("job", name),
	)

	if err != nil {
		log.Error().Err(err).Str("job", name).Msg("Failed to schedule job")
		return ErrFailedToCreateJob
	}

	r.jobs[name] = job

	log.Info().
		Str("job", name).
		Str("cron", cronSchedule).
		Msg("Job registered with scheduler")

	return nil
}

// executeJob is the function that gets called on schedule
func (r *Runner) executeJob(name string) {
	r.mu.RLock()
	task, exists := r.tasks[name]
	r.mu.RUnlock()

	if !exists {
		log.Error().Str("job", name).Msg("Job not found in registry")
		return
	}

	started := time.Now()
	log.Info().Str("job", name).Msg("Starting scheduled job")
	task()
	log.Info().Str("job", name).Dur("duration", time.Since(started)).Msg("Scheduled job completed")
}

// Start begins the scheduler
func (r *Runner) Start() {
	r.scheduler.Start()
	log.Info().Int("jobs", len(r.jobs)).Msg("Scheduler started")
}

// Stop halts the scheduler
func (r *Runner) Stop(ctx context.Context) error {
	return r.scheduler.Shutdown()
}

// RunJobImmediately executes a job right now without waiting for schedule
func (r *Runner) RunJobImmediately(name string) error {
	r.mu.RLock()
	task, exists := r.tasks[name]
	r.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %s not registered", name)
	}

	task()
	return nil
}

// GetNextRunTime returns the next scheduled run for a job
func (r *Runner) GetNextRunTime(name string) (time.Time, error) {
	r.mu.RLock()
	job, exists := r.jobs[name]
	r.mu.RUnlock()

	if !exists {
		return time.Time{}, fmt.Errorf("no job found for %s", name)
	}

	return job.NextRun()
}
