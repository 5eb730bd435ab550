package cache

import (
	"context"
	"sync"

	"phishdetect/internal/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

var (
	instance *badger.DB
	openOnce sync.Once
	openErr  error
)

// BadgerSingleInstance opens the verdict store once per process. Use defer
// Close() at shutdown.
func BadgerSingleInstance() (*badger.DB, error) {
	openOnce.Do(func() {
		cfg := config.GetConfig().Cache
		instance, openErr = badger.Open(
			badger.DefaultOptions(cfg.BadgerPath).WithInMemory(cfg.InMemory),
		)
		if openErr != nil {
			log.Error().Err(openErr).Msg("Failed to open badger database")
		}
	})
	return instance, openErr
}

func GetBadgerInstance() *badger.DB {
	if instance == nil {
		log.Info().Msg("Badger instance is nil trying to init")
		BadgerSingleInstance()
	}
	return instance
}

// Ready reports whether the verdict cache can serve lookups.
func Ready() bool {
	return instance != nil
}

// InitializeCache opens badger, builds the bloom front gate and starts the
// async writer pool.
func InitializeCache(ctx context.Context) error {
	db, err := BadgerSingleInstance()
	if err != nil {
		return err
	}

	cfg := config.GetConfig().Cache
	if cfg.UseBloom {
		if err := BuildBloomFilterFromBadger(ctx, db); err != nil {
			return err
		}
	}

	startWriter()
	log.Debug().Bool("in_memory", cfg.InMemory).Msg("Verdict cache initialized")
	return nil
}

// Close flushes pending writes and closes the store.
func Close() error {
	stopWriter()
	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}
