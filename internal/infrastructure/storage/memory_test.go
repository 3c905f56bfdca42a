package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"BrowseLens/internal/domain"
)

func memRecord(userID, url string, receivedAt time.Time) domain.ActivityRecord {
	return domain.ActivityRecord{
		ID:         fmt.Sprintf("%s-%d", url, receivedAt.UnixNano()),
		UserID:     userID,
		URL:        url,
		ReceivedAt: receivedAt,
	}
}

func TestMemoryStoreIngestCounts(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	for i := 1; i <= 3; i++ {
		count, err := store.Ingest(ctx, memRecord("user123", "https://a.com", base))
		if err != nil {
			t.Fatalf("Ingest error: %v", err)
		}
		if count != i {
			t.Fatalf("count = %d, want %d", count, i)
		}
	}

	count, err := store.Ingest(ctx, memRecord("other", "https://b.com", base))
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if count != 1 {
		t.Fatalf("per-user count leaked across users: %d", count)
	}
}

func TestMemoryStoreIngestRequiresUser(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	_, err := store.Ingest(context.Background(), domain.ActivityRecord{URL: "https://a.com"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestMemoryStoreListMostRecentFirst(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	// Deliberately out of arrival order.
	for _, offset := range []time.Duration{-2 * time.Hour, 0, -time.Hour} {
		if _, err := store.Ingest(ctx, memRecord("user123", "https://a.com", base.Add(offset))); err != nil {
			t.Fatalf("Ingest error: %v", err)
		}
	}

	items, err := store.List(ctx, "user123", 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].ReceivedAt.After(items[i-1].ReceivedAt) {
			t.Fatal("records not sorted most-recent-first")
		}
	}
}

func TestMemoryStoreListClampsLimit(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		rec := memRecord("user123", fmt.Sprintf("https://s%d.com", i), base.Add(time.Duration(i)*time.Second))
		if _, err := store.Ingest(ctx, rec); err != nil {
			t.Fatalf("Ingest error: %v", err)
		}
	}

	items, err := store.List(ctx, "user123", 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("limit 0 must clamp to 1, got %d records", len(items))
	}

	items, err = store.List(ctx, "user123", 5000)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("oversized limit must clamp, not fail: got %d", len(items))
	}

	items, err = store.List(ctx, "user123", 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
}

func TestMemoryStoreClearIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	removed, err := store.Clear(ctx, "nobody")
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if removed != 0 {
		t.Fatalf("clearing unknown user removed %d", removed)
	}

	for i := 0; i < 4; i++ {
		if _, err := store.Ingest(ctx, memRecord("user123", "https://a.com", time.Now())); err != nil {
			t.Fatalf("Ingest error: %v", err)
		}
	}

	removed, err = store.Clear(ctx, "user123")
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if removed != 4 {
		t.Fatalf("removed = %d, want 4", removed)
	}

	removed, err = store.Clear(ctx, "user123")
	if err != nil {
		t.Fatalf("second Clear error: %v", err)
	}
	if removed != 0 {
		t.Fatalf("second clear removed = %d, want 0", removed)
	}
}

func TestMemoryStoreConcurrentIngest(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				rec := memRecord("user123", fmt.Sprintf("https://w%d.com/%d", w, i), time.Now())
				if _, err := store.Ingest(ctx, rec); err != nil {
					t.Errorf("Ingest error: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	items, err := store.List(ctx, "user123", 1000)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != workers*perWorker {
		t.Fatalf("len = %d, want %d (no records lost)", len(items), workers*perWorker)
	}
}

func TestMemoryStorePreferences(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetPreference(ctx, "user123", "https://www.reddit.com/r/golang", "Programming"); err != nil {
		t.Fatalf("SetPreference error: %v", err)
	}

	prefs, err := store.Preferences(ctx, "user123")
	if err != nil {
		t.Fatalf("Preferences error: %v", err)
	}
	if prefs["reddit.com"] != "Programming" {
		t.Fatalf("prefs = %v, want keyed by normalized host", prefs)
	}

	// Overwrite wins.
	if err := store.SetPreference(ctx, "user123", "reddit.com", "Social Media"); err != nil {
		t.Fatalf("SetPreference error: %v", err)
	}
	prefs, _ = store.Preferences(ctx, "user123")
	if prefs["reddit.com"] != "Social Media" {
		t.Fatalf("prefs = %v, want overwritten value", prefs)
	}
}

func TestMemoryStorePreferenceRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	err := store.SetPreference(context.Background(), "user123", "reddit.com", "Memeology")
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("error = %v, want ErrUnknownCategory", err)
	}
}

func TestMemoryStorePreferencesEmptyUser(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	prefs, err := store.Preferences(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Preferences error: %v", err)
	}
	if len(prefs) != 0 {
		t.Fatalf("prefs = %v, want empty map", prefs)
	}
}
