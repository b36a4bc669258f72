package follows

import (
	"context"
	"testing"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity"
)

func TestFollowUnfollowCounts(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := m.Follow(ctx, "a", "b", now); err != nil {
		t.Fatalf("a->b: %v", err)
	}
	if err := m.Follow(ctx, "c", "b", now); err != nil {
		t.Fatalf("c->b: %v", err)
	}
	if err := m.Follow(ctx, "b", "a", now); err != nil {
		t.Fatalf("b->a: %v", err)
	}

	followers, following, err := m.Counts(ctx, "b")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if followers != 2 || following != 1 {
		t.Fatalf("b counts = %d/%d, want 2/1", followers, following)
	}

	if err := m.Unfollow(ctx, "c", "b"); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	followers, _, _ = m.Counts(ctx, "b")
	if followers != 1 {
		t.Fatalf("followers after unfollow = %d", followers)
	}
	if err := m.Unfollow(ctx, "c", "b"); !identity.IsNotFound(err) {
		t.Fatalf("second unfollow: err = %v, want not found", err)
	}
}

func TestFollowRejectsSelfAndDuplicates(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := m.Follow(ctx, "a", "a", now); !identity.IsInvalidInput(err) {
		t.Fatalf("self-follow: err = %v, want invalid input", err)
	}
	if err := m.Follow(ctx, "a", "b", now); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := m.Follow(ctx, "a", "b", now); !identity.IsConflict(err) {
		t.Fatalf("duplicate follow: err = %v, want conflict", err)
	}
}

func TestPurgeAccountDropsBothDirections(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	m.Follow(ctx, "a", "b", now)
	m.Follow(ctx, "b", "a", now)
	m.Follow(ctx, "c", "b", now)

	if err := m.PurgeAccount(ctx, "a"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	followers, following, _ := m.Counts(ctx, "a")
	if followers != 0 || following != 0 {
		t.Fatalf("a still has edges: %d/%d", followers, following)
	}
	followers, _, _ = m.Counts(ctx, "b")
	if followers != 1 {
		t.Fatalf("b followers = %d, want 1 (from c)", followers)
	}
}
