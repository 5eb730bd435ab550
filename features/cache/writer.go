package cache

import (
	"context"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/rs/zerolog/log"
)

var (
	writerPool pond.Pool
	writerOnce sync.Once
)

// startWriter spins up a single-worker pool so cache writes serialize
// behind the request path instead of blocking it.
func startWriter() {
	writerOnce.Do(func() {
		writerPool = pond.NewPool(1)
		log.Debug().Msg("Verdict cache writer pool started")
	})
}

func stopWriter() {
	if writerPool != nil {
		writerPool.StopAndWait()
	}
}

// SubmitVerdict queues an async cache write. Dropped silently when the
// cache is not running; the verdict has already been served to the caller.
func SubmitVerdict(key, status string, probability float64) {
	if writerPool == nil || !Ready() {
		return
	}

	writerPool.Submit(func() {
		verdict := Verdict{
			Status:      status,
			Probability: probability,
			CachedAt:    time.Now().UTC(),
		}
		if err := setVerdict(key, verdict); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to write verdict to cache")
		}
	})
}

// Sweep runs badger value-log GC and rebuilds the bloom filter, dropping
// keys that expired since the last pass. Scheduled by the runner.
func Sweep() {
	db := GetBadgerInstance()
	if db == nil {
		return
	}

	if err := db.RunValueLogGC(0.5); err != nil {
		log.Debug().Err(err).Msg("Badger value log GC made no progress")
	}

	if err := BuildBloomFilterFromBadger(context.Background(), db); err != nil {
		log.Warn().Err(err).Msg("Failed to rebuild verdict bloom filter")
	}
}
