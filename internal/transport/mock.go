package transport

import (
	"context"
	"time"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
	"github.com/wajeeh/souqadmin/internal/feature/export"
	"github.com/wajeeh/souqadmin/internal/feature/user"
)

// MockClient serves every operation from an in-memory record store. It is
// the offline development backend; an optional per-call latency imitates
// the network.
type MockClient struct {
	store   user.Store
	latency time.Duration
	now     func() time.Time
}

// NewMockClient wraps the given store.
func NewMockClient(store user.Store, latency time.Duration) *MockClient {
	return &MockClient{store: store, latency: latency, now: time.Now}
}

// Store exposes the backing store, mainly for tests that need to assert
// against the source of truth.
func (c *MockClient) Store() user.Store {
	return c.store
}

func (c *MockClient) delay(ctx context.Context) error {
	if c.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(c.latency):
		return nil
	case <-ctx.Done():
		return apierr.Wrap(apierr.KindNetworkUnreachable, "request cancelled", ctx.Err())
	}
}

// ListUsers runs the query engine over the store.
func (c *MockClient) ListUsers(ctx context.Context, q user.Query) (*user.Page, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	return c.store.List(ctx, q)
}

// GetUser returns one record.
func (c *MockClient) GetUser(ctx context.Context, id int) (*user.User, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	return c.store.Get(ctx, id)
}

// UpdateUserStatus mutates the store. The reason field is accepted and
// discarded, as the mock keeps no audit trail.
func (c *MockClient) UpdateUserStatus(ctx context.Context, id int, upd user.StatusUpdate) (*user.User, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	if !upd.Status.Valid() {
		return nil, apierr.Newf(apierr.KindInvalidArgument, "invalid status %q", upd.Status)
	}
	return c.store.UpdateStatus(ctx, id, upd.Status)
}

// Analytics recomputes the snapshot from the full store.
func (c *MockClient) Analytics(ctx context.Context) (*user.AnalyticsSnapshot, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	all, err := c.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return user.Analyze(all, c.now()), nil
}

// Export renders the whole dataset as CSV. The mock backend ignores the
// query, matching the behavior of the system this replaces.
func (c *MockClient) Export(ctx context.Context, q user.Query) ([]byte, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	all, err := c.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return export.MarshalCSV(all)
}

// Close closes the backing store.
func (c *MockClient) Close() error {
	return c.store.Close()
}
