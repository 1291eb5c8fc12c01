// Package transport routes logical dashboard operations either to the
// in-memory mock backend or to the live REST backend. The implementation
// is chosen once at startup; callers never branch on mode.
package transport

import (
	"context"
	"time"

	"github.com/wajeeh/souqadmin/internal/core/config"
	"github.com/wajeeh/souqadmin/internal/core/event"
	"github.com/wajeeh/souqadmin/internal/core/logger"
	"github.com/wajeeh/souqadmin/internal/feature/session"
	"github.com/wajeeh/souqadmin/internal/feature/user"
)

// Client is the uniform call surface consumed by the cache coordinator.
// Both implementations honor identical shapes and surface failures as
// apierr errors, never raw transport errors.
type Client interface {
	// ListUsers returns one page of users matching the query.
	ListUsers(ctx context.Context, q user.Query) (*user.Page, error)

	// GetUser returns a single user by ID.
	GetUser(ctx context.Context, id int) (*user.User, error)

	// UpdateUserStatus applies a status-change mutation and returns the
	// confirmed record.
	UpdateUserStatus(ctx context.Context, id int, upd user.StatusUpdate) (*user.User, error)

	// Analytics returns the aggregate snapshot.
	Analytics(ctx context.Context) (*user.AnalyticsSnapshot, error)

	// Export returns the user dataset as CSV bytes.
	Export(ctx context.Context, q user.Query) ([]byte, error)

	// Close releases any held resources.
	Close() error
}

// New builds the transport selected by cfg.Mode.
func New(cfg *config.Config, tokens *session.TokenStore, bus event.Bus, log logger.Logger) (Client, error) {
	switch cfg.Mode {
	case config.ModeMock:
		var (
			users []*user.User
			err   error
		)
		if cfg.Mock.FixturePath != "" {
			users, err = user.LoadFixture(cfg.Mock.FixturePath)
			if err != nil {
				return nil, err
			}
		} else {
			users = user.Generate(cfg.Mock.UserCount, cfg.Mock.Seed, time.Now())
		}
		log.Info("using mock transport", logger.Int("users", len(users)))
		return NewMockClient(user.NewMemoryStore(users), cfg.Mock.Latency), nil
	default:
		log.Info("using live transport", logger.String("base_url", cfg.API.BaseURL))
		return NewHTTPClient(cfg.API, tokens, bus, log)
	}
}
