package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

var (
	bloomFilter *bloom.BloomFilter
	bloomMu     sync.RWMutex

	ErrBloomFilterNotInitialized = errors.New("bloom filter not initialized")
)

const minBloomCapacity = 1000

// BuildBloomFilterFromBadger sizes a fresh filter from the current key
// count and populates it. Deleted or expired keys stay in the filter until
// the next rebuild; that only costs a spurious badger read, never a wrong
// verdict.
func BuildBloomFilterFromBadger(ctx context.Context, db *badger.DB) error {
	keyCount := 0
	_ = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keyCount++
		}
		return nil
	})

	capacity := keyCount
	if capacity < minBloomCapacity {
		capacity = minBloomCapacity
	}

	filter := bloom.NewWithEstimates(uint(capacity), 0.01)

	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				filter.Add(it.Item().Key())
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	bloomMu.Lock()
	bloomFilter = filter
	bloomMu.Unlock()

	log.Info().
		Int("keys", keyCount).
		Uint("capacity", filter.Cap()).
		Uint("hash_functions", filter.K()).
		Msg("Verdict bloom filter built")

	return nil
}

// MightContain tests the filter; true means the key may be in badger,
// false means it definitely is not.
func MightContain(key string) (bool, error) {
	bloomMu.RLock()
	defer bloomMu.RUnlock()

	if bloomFilter == nil {
		return false, ErrBloomFilterNotInitialized
	}
	return bloomFilter.Test([]byte(key)), nil
}

// AddKey records a freshly written verdict key.
func AddKey(key string) {
	bloomMu.Lock()
	defer bloomMu.Unlock()

	if bloomFilter != nil {
		bloomFilter.Add([]byte(key))
	}
}
