package likes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity"
)

type likeKey struct {
	recipeID  string
	accountID string
}

// MemoryStore is an in-process Store for development mode and tests.
type MemoryStore struct {
	mu    sync.Mutex
	likes map[likeKey]time.Time
}

// NewMemoryStore returns an empty in-memory like store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{likes: make(map[likeKey]time.Time)}
}

func (m *MemoryStore) Toggle(ctx context.Context, recipeID, accountID string, now time.Time) (bool, error) {
	const op = "likes.Toggle"

	if err := ctx.Err(); err != nil {
		return false, err
	}
	if strings.TrimSpace(recipeID) == "" || strings.TrimSpace(accountID) == "" {
		return false, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "missing id"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	k := likeKey{recipeID: recipeID, accountID: accountID}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.likes[k]; ok {
		delete(m.likes, k)
		return false, nil
	}
	m.likes[k] = now
	return true, nil
}

func (m *MemoryStore) CountForRecipe(ctx context.Context, recipeID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.likes {
		if k.recipeID == recipeID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) LikedRecipeIDs(ctx context.Context, accountID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	type liked struct {
		id string
		at time.Time
	}
	var hits []liked
	for k, at := range m.likes {
		if k.accountID == accountID {
			hits = append(hits, liked{id: k.recipeID, at: at})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].at.After(hits[j].at) })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.id)
	}
	return out, nil
}

func (m *MemoryStore) PurgeRecipe(ctx context.Context, recipeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.likes {
		if k.recipeID == recipeID {
			delete(m.likes, k)
		}
	}
	return nil
}

func (m *MemoryStore) PurgeAccount(ctx context.Context, accountID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.likes {
		if k.accountID == accountID {
			delete(m.likes, k)
		}
	}
	return nil
}
