package user

import (
	"context"
	"sync"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
)

// MemoryStore implements Store with in-memory records. It backs mock mode
// and is the sole owner of its records: every record crossing the API
// boundary is a copy.
type MemoryStore struct {
	users map[int]*User
	order []int // stable iteration order, newest-first by ID
	mu    sync.RWMutex
}

// NewMemoryStore creates a store holding the given records in the given
// order. Records are copied in.
func NewMemoryStore(users []*User) *MemoryStore {
	s := &MemoryStore{
		users: make(map[int]*User, len(users)),
		order: make([]int, 0, len(users)),
	}
	for _, u := range users {
		if _, dup := s.users[u.ID]; dup {
			continue
		}
		s.users[u.ID] = u.Clone()
		s.order = append(s.order, u.ID)
	}
	return s
}

// Get retrieves a user by ID.
func (s *MemoryStore) Get(ctx context.Context, id int) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u.Clone(), nil
}

// List runs the query engine over the stored records.
func (s *MemoryStore) List(ctx context.Context, q Query) (*Page, error) {
	s.mu.RLock()
	all := s.snapshotLocked()
	s.mu.RUnlock()

	return Run(all, q)
}

// All returns every record in store order.
func (s *MemoryStore) All(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

// UpdateStatus replaces the status of the user with the given ID.
func (s *MemoryStore) UpdateStatus(ctx context.Context, id int, status Status) (*User, error) {
	if !status.Valid() {
		return nil, apierr.Newf(apierr.KindInvalidArgument, "invalid status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Status = status
	return u.Clone(), nil
}

// Count returns the total number of users.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Close closes the store.
func (s *MemoryStore) Close() error {
	return nil
}

// snapshotLocked copies all records in order. Callers hold at least a read
// lock.
func (s *MemoryStore) snapshotLocked() []*User {
	out := make([]*User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id].Clone())
	}
	return out
}
