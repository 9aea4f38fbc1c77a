// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/metrics"
	"github.com/tomtom215/platewise/internal/recommend"
)

// Key prefix for ranking entries in BadgerDB.
const rankingKeyPrefix = "ranking:"

// metricsType labels this cache in Prometheus.
const metricsType = "ranking"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("ranking cache is closed")

// Entry is a cached ranking for one user against one dataset.
type Entry struct {
	Fingerprint string                     `json:"fingerprint"`
	UserID      string                     `json:"user_id"`
	Items       []recommend.Recommendation `json:"items"`
	Visited     []string                   `json:"visited,omitempty"`
	Candidates  int                        `json:"candidates"`
	ModelFitAt  time.Time                  `json:"model_fit_at"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// Config configures a Store.
type Config struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory keeps all data in memory.
	InMemory bool `koanf:"in_memory"`

	// TTL bounds how long an entry is served.
	TTL time.Duration `koanf:"ttl"`

	// MemoryEntries sizes the in-process LRU in front of badger.
	// Zero disables it.
	MemoryEntries int `koanf:"memory_entries"`

	// GCInterval is how often the value log is compacted.
	GCInterval time.Duration `koanf:"gc_interval"`

	// GCDiscardRatio is passed to RunValueLogGC.
	GCDiscardRatio float64 `koanf:"gc_discard_ratio"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Path:           "./data/cache",
		TTL:            time.Hour,
		MemoryEntries:  1024,
		GCInterval:     10 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// Store is a persistent ranking cache: an LRU for hot users backed by
// BadgerDB. Entries expire through badger's native TTL.
type Store struct {
	db     *badger.DB
	cfg    Config
	front  *LRU[*Entry]
	logger zerolog.Logger
}

// Open opens (or creates) the store described by cfg.
func Open(cfg Config) (*Store, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", cfg.TTL)
	}
	if cfg.GCDiscardRatio <= 0 || cfg.GCDiscardRatio >= 1 {
		cfg.GCDiscardRatio = 0.5
	}

	logger := logging.Component("cache")

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = logging.NewBadgerLogger(logger)
	// Rankings are small; keep the value log modest.
	opts.ValueLogFileSize = 64 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for ranking cache: %w", err)
	}

	s := &Store{db: db, cfg: cfg, logger: logger}
	if cfg.MemoryEntries > 0 {
		s.front = NewLRU[*Entry](cfg.MemoryEntries, cfg.TTL)
	}

	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Dur("ttl", cfg.TTL).
		Msg("ranking cache opened")
	return s, nil
}

// Key builds the cache key for a user against a dataset fingerprint.
func Key(fingerprint, userID string) string {
	return rankingKeyPrefix + fingerprint + ":" + userID
}

// Get returns the entry for key. A missing or expired entry is reported as
// (nil, false, nil).
func (s *Store) Get(ctx context.Context, key string) (*Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	if s.front != nil {
		if e, ok := s.front.Get(key); ok {
			metrics.RecordCacheLookup(metricsType, true)
			return e, true, nil
		}
	}

	var entry Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		metrics.RecordCacheLookup(metricsType, false)
		return nil, false, nil
	case errors.Is(err, badger.ErrDBClosed):
		return nil, false, ErrClosed
	case err != nil:
		metrics.RecordCacheError(metricsType, "get")
		return nil, false, fmt.Errorf("get ranking %s: %w", key, err)
	}

	if s.front != nil {
		s.front.Add(key, &entry)
	}
	metrics.RecordCacheLookup(metricsType, true)
	return &entry, true, nil
}

// Put stores e under key with the configured TTL.
func (s *Store) Put(ctx context.Context, key string, e *Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal ranking: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(s.cfg.TTL))
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	if err != nil {
		metrics.RecordCacheError(metricsType, "put")
		return fmt.Errorf("put ranking %s: %w", key, err)
	}

	if s.front != nil {
		s.front.Add(key, e)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	if s.front != nil {
		s.front.Remove(key)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete ranking %s: %w", key, err)
	}
	return nil
}

// PurgeStale deletes every ranking not computed against fingerprint and
// returns how many were removed.
func (s *Store) PurgeStale(ctx context.Context, fingerprint string) (int, error) {
	keep := rankingKeyPrefix + fingerprint + ":"

	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(rankingKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().KeyCopy(nil)
			if !strings.HasPrefix(string(key), keep) {
				stale = append(stale, key)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan rankings: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range stale {
		if err := wb.Delete(key); err != nil {
			return 0, fmt.Errorf("delete stale ranking: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush stale rankings: %w", err)
	}

	if s.front != nil {
		s.front.Clear()
	}
	s.logger.Info().Int("removed", len(stale)).Str("fingerprint", fingerprint).Msg("purged stale rankings")
	return len(stale), nil
}

// Len counts live entries.
func (s *Store) Len(_ context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(rankingKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunGC runs one value log GC pass. It reports whether a file was rewritten.
func (s *Store) RunGC() (bool, error) {
	if s.front != nil {
		s.front.CleanupExpired()
	}
	if s.cfg.InMemory {
		metrics.RecordCacheGC(metricsType, false)
		return false, nil
	}

	err := s.db.RunValueLogGC(s.cfg.GCDiscardRatio)
	switch {
	case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
		metrics.RecordCacheGC(metricsType, false)
		return false, nil
	case err != nil:
		metrics.RecordCacheError(metricsType, "gc")
		return false, fmt.Errorf("run value log gc: %w", err)
	}
	metrics.RecordCacheGC(metricsType, true)
	return true, nil
}

// GCInterval returns the configured GC period.
func (s *Store) GCInterval() time.Duration {
	return s.cfg.GCInterval
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close ranking cache: %w", err)
	}
	return nil
}
