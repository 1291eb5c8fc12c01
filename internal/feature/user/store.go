package user

import (
	"context"
)

// Store defines the interface for user record storage. In mock mode the
// MemoryStore is the source of truth; in live mode the remote backend owns
// the records and no Store exists on this side.
type Store interface {
	// Get retrieves a user by ID.
	Get(ctx context.Context, id int) (*User, error)

	// List runs a query over the stored records.
	List(ctx context.Context, q Query) (*Page, error)

	// All returns every record in stable store order.
	All(ctx context.Context) ([]*User, error)

	// UpdateStatus replaces the status of the user with the given ID and
	// returns the updated record.
	UpdateStatus(ctx context.Context, id int, status Status) (*User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)

	// Close closes the store.
	Close() error
}
