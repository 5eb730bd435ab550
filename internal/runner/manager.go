package runner

import (
	"context"
	"errors"
	"sync"

	"phishdetect/features/cache"
	"phishdetect/internal/config"

	"github.com/rs/zerolog/log"
)

// Error variables for runner manager
var (
	ErrRunnerCreate  = errors.New("failed to create runner")
	ErrJobRegister   = errors.New("failed to register jobs")
	ErrRunnerNotInit = errors.New("runner not initialized")
)

var (
	globalRunner *Runner
	initOnce     sync.Once
	initError    error
)

// InitializeRunner creates and starts the global runner with the cache
// maintenance job. Safe to call when the cache is disabled: the scheduler
// simply runs with no jobs.
func InitializeRunner() (*Runner, error) {
	initOnce.Do(func() {
		_globalRunner, err := NewRunner()
		if err != nil {
			log.Err(err).Msg("Failed to create runner")
			initError = ErrRunnerCreate
			return
		}

		if err := registerMaintenanceJobs(_globalRunner); err != nil {
			log.Err(err).Msg("Failed to register jobs")
			initError = ErrJobRegister
			return
		}

		globalRunner = _globalRunner
		globalRunner.Start()
		log.Info().Msg("Global scheduler runner initialized and started")
	})

	return globalRunner, initError
}

func registerMaintenanceJobs(runner *Runner) error {
	cfg := config.GetConfig().Cache
	if !cfg.Enabled {
		log.Info().Msg("Cache disabled, skipping sweep job registration")
		return nil
	}

	if err := runner.RegisterJob("cache_sweep", cfg.SweepCron, cache.Sweep); err != nil {
		log.Err(err).Msg("Failed to register cache sweep job")
		return errors.Join(ErrJobRegister, err)
	}

	return nil
}

// GetRunner returns the global runner instance
func GetRunner() (*Runner, error) {
	if globalRunner == nil {
		log.Error().Msg("Runner not initialized")
		return nil, ErrRunnerNotInit
	}
	return globalRunner, nil
}

// ShutdownRunner stops the global runner
func ShutdownRunner(ctx context.Context) error {
	if globalRunner == nil {
		return nil
	}
	return globalRunner.Stop(ctx)
}
