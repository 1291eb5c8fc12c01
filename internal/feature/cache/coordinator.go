// Package cache keeps query results between the UI and the transport and
// coordinates optimistic status mutations: apply locally, call the
// backend, then commit (invalidate) or roll back.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
	"github.com/wajeeh/souqadmin/internal/core/config"
	"github.com/wajeeh/souqadmin/internal/core/event"
	"github.com/wajeeh/souqadmin/internal/core/logger"
	"github.com/wajeeh/souqadmin/internal/feature/user"
	"github.com/wajeeh/souqadmin/internal/transport"
)

// Coordinator owns every cache entry. All reads and mutations go through
// it; no other component writes into the caches.
type Coordinator struct {
	client  transport.Client
	bus     event.Bus
	log     logger.Logger
	// results holds list and analytics entries; details holds single-item
	// entries, which have plain TTL semantics.
	results *table
	details *gocache.Cache
	group   singleflight.Group

	listTTL      time.Duration
	detailTTL    time.Duration
	analyticsTTL time.Duration
}

// New builds a coordinator over the given transport.
func New(cfg config.CacheConfig, client transport.Client, bus event.Bus, log logger.Logger) *Coordinator {
	return &Coordinator{
		client:       client,
		bus:          bus,
		log:          log,
		results:      newTable(time.Now),
		details:      gocache.New(cfg.DetailTTL, 2*cfg.DetailTTL),
		listTTL:      cfg.ListTTL,
		detailTTL:    cfg.DetailTTL,
		analyticsTTL: cfg.AnalyticsTTL,
	}
}

// ListUsers serves a list query from cache when fresh, otherwise fetches
// through the transport. Concurrent readers of one key share a single
// outbound request. A failed refetch leaves the previous cached value in
// place, still stale.
func (c *Coordinator) ListUsers(ctx context.Context, q user.Query) (*user.Page, error) {
	q = q.Normalized()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := listKey(q)
	if v, ok := c.results.get(key, c.listTTL); ok {
		return v.(*user.Page).Clone(), nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		page, err := c.client.ListUsers(ctx, q)
		if err != nil {
			return nil, err
		}
		c.results.set(key, page.Clone())
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug("coalesced list fetch", logger.String("key", key))
	}
	return v.(*user.Page).Clone(), nil
}

// GetUser serves the single-item cache, fetching on miss or expiry.
func (c *Coordinator) GetUser(ctx context.Context, id int) (*user.User, error) {
	key := detailKey(id)
	if v, ok := c.details.Get(key); ok {
		return v.(*user.User).Clone(), nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		u, err := c.client.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		c.details.Set(key, u.Clone(), c.detailTTL)
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*user.User).Clone(), nil
}

// RefreshUser bypasses the single-item cache and refetches.
func (c *Coordinator) RefreshUser(ctx context.Context, id int) (*user.User, error) {
	c.details.Delete(detailKey(id))
	return c.GetUser(ctx, id)
}

// Analytics serves the aggregate snapshot with its own freshness window.
func (c *Coordinator) Analytics(ctx context.Context) (*user.AnalyticsSnapshot, error) {
	if v, ok := c.results.get(analyticsKey, c.analyticsTTL); ok {
		return v.(*user.AnalyticsSnapshot).Clone(), nil
	}

	v, err, _ := c.group.Do(analyticsKey, func() (interface{}, error) {
		snap, err := c.client.Analytics(ctx)
		if err != nil {
			return nil, err
		}
		c.results.set(analyticsKey, snap.Clone())
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*user.AnalyticsSnapshot).Clone(), nil
}

// Export passes through to the transport. Export results are never cached.
func (c *Coordinator) Export(ctx context.Context, q user.Query) ([]byte, error) {
	return c.client.Export(ctx, q)
}

// UpdateUserStatus performs the optimistic status mutation:
//
//	Idle -> OptimisticallyApplied -> Committed | RolledBack
//
// Every cached list is rewritten before the backend call; on success all
// list entries and the analytics entry are marked stale and the confirmed
// record lands in the single-item cache; on failure the pre-mutation
// snapshots are restored verbatim. Either way a notification goes out.
func (c *Coordinator) UpdateUserStatus(ctx context.Context, id int, status user.Status, reason string) (*user.User, error) {
	if !status.Valid() {
		return nil, apierr.Newf(apierr.KindInvalidArgument, "invalid status %q", status)
	}

	mutationID := uuid.NewString()
	log := c.log.With(
		logger.String("mutation_id", mutationID),
		logger.Int("user_id", id),
		logger.String("status", string(status)),
	)

	// Optimistic phase: snapshot, then rewrite.
	snapshot := c.results.snapshotLists()
	c.results.rewriteStatus(id, status)
	log.Debug("optimistic update applied", logger.Int("snapshotted_entries", len(snapshot)))

	confirmed, err := c.client.UpdateUserStatus(ctx, id, user.StatusUpdate{Status: status, Reason: reason})
	if err != nil {
		// Rollback phase.
		c.results.restore(snapshot)
		log.Warn("mutation failed, cache rolled back", logger.Err(err))
		c.notifyError(err, mutationID)
		return nil, err
	}

	// Commit phase: every list and the analytics entry go stale, the
	// confirmed record becomes the single-item entry.
	c.results.markAllStale()
	c.details.Set(detailKey(id), confirmed.Clone(), c.detailTTL)
	log.Info("mutation committed")

	c.bus.Publish(event.TopicNotify, event.Notification{
		Level:      event.LevelSuccess,
		Message:    fmt.Sprintf("User has been %s successfully", statusText(status)),
		MutationID: mutationID,
	})
	return confirmed, nil
}

// notifyError surfaces one notification per offending field when the
// backend returned structured validation detail, else a single message.
func (c *Coordinator) notifyError(err error, mutationID string) {
	if apierr.IsKind(err, apierr.KindValidationFailed) {
		var e *apierr.Error
		if errors.As(err, &e) && len(e.Fields) > 0 {
			for field, messages := range e.Fields {
				for _, msg := range messages {
					c.bus.Publish(event.TopicNotify, event.Notification{
						Level:      event.LevelError,
						Message:    field + ": " + msg,
						MutationID: mutationID,
					})
				}
			}
			return
		}
	}
	c.bus.Publish(event.TopicNotify, event.Notification{
		Level:      event.LevelError,
		Message:    apierr.Notification(err),
		MutationID: mutationID,
	})
}

// Stats returns the list/analytics cache counters.
func (c *Coordinator) Stats() Stats {
	return c.results.statsSnapshot()
}

func statusText(s user.Status) string {
	switch s {
	case user.StatusActive:
		return "activated"
	case user.StatusSuspended:
		return "suspended"
	default:
		return "banned"
	}
}
