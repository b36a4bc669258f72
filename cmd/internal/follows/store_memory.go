package follows

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity"
)

type edge struct {
	follower string
	followee string
}

// MemoryStore is an in-process Store for development mode and tests.
type MemoryStore struct {
	mu    sync.Mutex
	edges map[edge]time.Time
}

// NewMemoryStore returns an empty in-memory follow store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{edges: make(map[edge]time.Time)}
}

func (m *MemoryStore) Follow(ctx context.Context, followerID, followeeID string, now time.Time) error {
	const op = "follows.Follow"

	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(followerID) == "" || strings.TrimSpace(followeeID) == "" {
		return identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "missing id"}
	}
	if followerID == followeeID {
		return identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "cannot follow yourself"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	e := edge{follower: followerID, followee: followeeID}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.edges[e]; ok {
		return identity.ConflictError{Op: op, Field: "follow"}
	}
	m.edges[e] = now
	return nil
}

func (m *MemoryStore) Unfollow(ctx context.Context, followerID, followeeID string) error {
	const op = "follows.Unfollow"

	if err := ctx.Err(); err != nil {
		return err
	}
	e := edge{follower: followerID, followee: followeeID}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.edges[e]; !ok {
		return identity.NotFoundError{Op: op, Resource: "follow"}
	}
	delete(m.edges, e)
	return nil
}

func (m *MemoryStore) Counts(ctx context.Context, accountID string) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var followers, following int
	for e := range m.edges {
		if e.followee == accountID {
			followers++
		}
		if e.follower == accountID {
			following++
		}
	}
	return followers, following, nil
}

func (m *MemoryStore) PurgeAccount(ctx context.Context, accountID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for e := range m.edges {
		if e.follower == accountID || e.followee == accountID {
			delete(m.edges, e)
		}
	}
	return nil
}
