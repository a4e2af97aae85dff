package store

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mmcdole/malplan/internal/domain"
)

// CacheStore implements domain.SnapshotRepository on a KV backend
type CacheStore struct {
	kv     domain.KVStore
	logger *slog.Logger
}

// NewCacheStore creates a snapshot store
func NewCacheStore(kv domain.KVStore, logger *slog.Logger) *CacheStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheStore{kv: kv, logger: logger}
}

// Read returns the snapshot for kind. Missing or undecodable snapshots are a miss.
func (s *CacheStore) Read(kind domain.ListKind) (domain.CacheSnapshot, bool) {
	key := cacheKey(kind)
	data, err := s.kv.Get(key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		s.logger.Debug("no cached snapshot", "key", key)
		return domain.CacheSnapshot{}, false
	}
	if err != nil {
		s.logger.Warn("failed to read cached snapshot", "key", key, "error", err)
		return domain.CacheSnapshot{}, false
	}

	var snapshot domain.CacheSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("failed to decode cached snapshot", "key", key, "error", err)
		return domain.CacheSnapshot{}, false
	}
	return snapshot, true
}

// Write replaces the snapshot for kind
func (s *CacheStore) Write(kind domain.ListKind, snapshot domain.CacheSnapshot) error {
	key := cacheKey(kind)
	if snapshot.Items == nil {
		snapshot.Items = []domain.TrackedItem{}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return &domain.FileError{Op: domain.FileOpEncode, Path: key, Err: err}
	}
	if err := s.kv.Put(key, data); err != nil {
		return err
	}

	s.logger.Debug("wrote cached snapshot", "key", key, "count", len(snapshot.Items))
	return nil
}
