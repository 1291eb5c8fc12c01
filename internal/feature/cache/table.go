package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/wajeeh/souqadmin/internal/feature/user"
)

// entry is one cached result. A stale entry keeps its last value so a
// failed refetch has something to fall back to; it just no longer counts
// as a hit.
type entry struct {
	value     interface{} // *user.Page for list keys, *user.AnalyticsSnapshot for the analytics key
	fetchedAt time.Time
	stale     bool
}

// Stats counts cache activity.
type Stats struct {
	Hits          int64
	Misses        int64
	Sets          int64
	Invalidations int64
}

// table is the entry store for list and analytics results. Unlike a plain
// TTL map it supports mark-stale-but-retain, bulk snapshot and verbatim
// restore, which the mutation coordinator needs.
type table struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	stats   Stats
}

func newTable(now func() time.Time) *table {
	if now == nil {
		now = time.Now
	}
	return &table{
		entries: make(map[string]*entry),
		now:     now,
	}
}

// get returns the cached value when the entry exists, is not stale and is
// younger than ttl.
func (t *table) get(key string, ttl time.Duration) (interface{}, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok || e.stale || t.now().Sub(e.fetchedAt) >= ttl {
		t.stats.Misses++
		return nil, false
	}
	t.stats.Hits++
	return e.value, true
}

// set stores value as fresh as of now.
func (t *table) set(key string, value interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Sets++
	t.entries[key] = &entry{value: value, fetchedAt: t.now()}
}

// markAllStale invalidates every entry. The values stay in place for
// fallback reads; the next get refetches.
func (t *table) markAllStale() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.entries {
		if !e.stale {
			e.stale = true
			t.stats.Invalidations++
		}
	}
}

// snapshotLists deep-copies every list entry, keyed by cache key, for
// rollback.
func (t *table) snapshotLists() map[string]*user.Page {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := make(map[string]*user.Page)
	for key, e := range t.entries {
		if !strings.HasPrefix(key, listPrefix) {
			continue
		}
		if page, ok := e.value.(*user.Page); ok {
			snap[key] = page.Clone()
		}
	}
	return snap
}

// rewriteStatus applies the optimistic update: in every cached list, the
// user with the given id gets the new status. Nothing else changes.
// Copy-on-write: readers clone pages outside the table lock, so a stored
// page must never be written again. Affected entries get a rewritten clone
// swapped in instead.
func (t *table) rewriteStatus(id int, status user.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, e := range t.entries {
		if !strings.HasPrefix(key, listPrefix) {
			continue
		}
		page, ok := e.value.(*user.Page)
		if !ok {
			continue
		}
		rewritten := page.Clone()
		changed := false
		for _, u := range rewritten.Data {
			if u.ID == id {
				u.Status = status
				changed = true
			}
		}
		if changed {
			e.value = rewritten
		}
	}
}

// restore puts snapshotted list entries back verbatim, preserving each
// entry's original fetch time and staleness.
func (t *table) restore(snap map[string]*user.Page) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, page := range snap {
		if e, ok := t.entries[key]; ok {
			e.value = page
		}
	}
}

// Snapshot of the counters.
func (t *table) statsSnapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
