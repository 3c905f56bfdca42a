// Package storage provides the activity-record and site-preference stores:
// a mutex-guarded in-memory implementation for tests and single-process
// deployments, and a SQL adapter for durable setups.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
	"BrowseLens/internal/taxonomy"
)

// List limits outside this range clamp to the nearest bound.
const (
	minListLimit = 1
	maxListLimit = 1000
)

func clampLimit(limit int) int {
	if limit < minListLimit {
		return minListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// MemoryStore keeps per-user activity logs and site preferences in process
// memory. Appends are atomic under the lock: readers observe either a
// complete record or none.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]domain.ActivityRecord
	prefs   map[string]map[string]string
}

var _ ports.ActivityStore = (*MemoryStore)(nil)
var _ ports.PreferenceStore = (*MemoryStore)(nil)

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: map[string][]domain.ActivityRecord{},
		prefs:   map[string]map[string]string{},
	}
}

// Ingest appends one record and returns the user's record count.
func (s *MemoryStore) Ingest(_ context.Context, record domain.ActivityRecord) (int, error) {
	if record.UserID == "" {
		return 0, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.UserID] = append(s.records[record.UserID], record)
	return len(s.records[record.UserID]), nil
}

// List returns up to limit records, most-recent-first by ReceivedAt.
// Records that arrived out of order are reordered at read time.
func (s *MemoryStore) List(_ context.Context, userID string, limit int) ([]domain.ActivityRecord, error) {
	limit = clampLimit(limit)

	s.mu.RLock()
	stored := s.records[userID]
	items := make([]domain.ActivityRecord, len(stored))
	copy(items, stored)
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ReceivedAt.After(items[j].ReceivedAt)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Clear removes every record for the user. Idempotent: an unknown or
// already-empty user yields 0.
func (s *MemoryStore) Clear(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.records[userID])
	delete(s.records, userID)
	return removed, nil
}

// SetPreference stores a site-to-category override keyed by host.
func (s *MemoryStore) SetPreference(_ context.Context, userID, site, category string) error {
	if userID == "" || site == "" {
		return fmt.Errorf("%w: user_id and site are required", domain.ErrInvalidInput)
	}
	if !taxonomy.Valid(category) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefs[userID] == nil {
		s.prefs[userID] = map[string]string{}
	}
	s.prefs[userID][domain.HostOf(site)] = category
	return nil
}

// Preferences returns a copy of the user's override map.
func (s *MemoryStore) Preferences(_ context.Context, userID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.prefs[userID]))
	for site, category := range s.prefs[userID] {
		out[site] = category
	}
	return out, nil
}
