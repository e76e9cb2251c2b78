// Package cache provides the shared in-process TTL store used by the
// cache tools. Entries expire lazily: an expired entry is removed only
// when it is next looked up, there is no background sweep, and entries
// that are never read again stay in memory until cleared.
package cache

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Store maps keys to values with per-entry expiration. All operations
// are total: they log internal failures and report them through their
// return values instead of panicking.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	logger  *slog.Logger
	now     func() time.Time
}

// Values are held as encoded JSON and decoded fresh on every read, so
// callers can mutate what Get returns without corrupting the store.
type entry struct {
	data      json.RawMessage
	cachedAt  time.Time
	expiresAt time.Time
}

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	return &Store{
		entries: make(map[string]entry),
		logger:  logger,
		now:     time.Now,
	}
}

// Put stores value under key, replacing any existing entry. A ttl of
// zero or less is accepted and produces an entry that is already
// expired at the next read. Put returns false only when the value
// cannot be serialized.
func (s *Store) Put(key string, value any, ttl time.Duration) bool {
	data, err := json.Marshal(value)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("cache put failed", "key", key, "error", err)
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[key] = entry{
		data:      data,
		cachedAt:  now,
		expiresAt: now.Add(ttl),
	}
	if s.logger != nil {
		s.logger.Debug("cache put", "key", key, "ttl", ttl)
	}
	return true
}

// Get returns the value stored under key, or absent. An entry past its
// expiration is deleted as a side effect and reported absent.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		if s.logger != nil {
			s.logger.Debug("cache entry expired", "key", key)
		}
		return nil, false
	}

	var value any
	if err := json.Unmarshal(e.data, &value); err != nil {
		// A stored entry that no longer decodes is unrecoverable.
		delete(s.entries, key)
		if s.logger != nil {
			s.logger.Error("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

// Clear removes entries and returns how many were removed. An empty
// pattern clears the whole store; otherwise every entry whose key
// contains pattern as a substring is removed.
func (s *Store) Clear(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pattern == "" {
		count := len(s.entries)
		s.entries = make(map[string]entry)
		if s.logger != nil {
			s.logger.Info("cache cleared", "removed", count)
		}
		return count
	}

	count := 0
	for key := range s.entries {
		if strings.Contains(key, pattern) {
			delete(s.entries, key)
			count++
		}
	}
	if s.logger != nil {
		s.logger.Info("cache cleared by pattern", "pattern", pattern, "removed", count)
	}
	return count
}

// Len reports the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
