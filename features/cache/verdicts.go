package cache

import (
	"encoding/json"
	"errors"
	"time"

	"phishdetect/internal/collector"
	"phishdetect/internal/config"

	"github.com/dgraph-io/badger/v4"
)

// Cache errors
var (
	ErrCacheNotInitialized = errors.New("verdict cache not initialized")
	ErrVerdictNotFound     = errors.New("verdict not found in cache")
)

// Verdict is a cached prediction for one normalized URL. Entries expire by
// badger TTL; CachedAt is informational for operators.
type Verdict struct {
	Status      string    `json:"status"`
	Probability float64   `json:"probability"`
	CachedAt    time.Time `json:"cached_at"`
}

// GetVerdict looks up a previously scored URL. The bloom filter gates the
// badger read: a negative test means the key was never written, so we skip
// the store entirely.
func GetVerdict(key string) (*Verdict, error) {
	db := GetBadgerInstance()
	if db == nil {
		return nil, ErrCacheNotInitialized
	}

	if likely, err := MightContain(key); err == nil && !likely {
		return nil, ErrVerdictNotFound
	}

	var verdict Verdict
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrVerdictNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &verdict)
		})
	})
	if err != nil {
		return nil, err
	}

	collector.IncCacheHit()
	return &verdict, nil
}

// setVerdict writes one entry with the configured TTL. Called from the
// writer pool, never from the request path.
func setVerdict(key string, verdict Verdict) error {
	db := GetBadgerInstance()
	if db == nil {
		return ErrCacheNotInitialized
	}

	payload, err := json.Marshal(verdict)
	if err != nil {
		return err
	}

	ttl := config.GetConfig().Cache.TTL
	err = db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), payload).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return err
	}

	AddKey(key)
	return nil
}
