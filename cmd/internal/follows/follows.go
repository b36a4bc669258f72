// Package follows tracks follower relationships between accounts.
package follows

import (
	"context"
	"time"
)

// Store is the follow-graph persistence boundary.
type Store interface {
	// Follow records follower -> followee. Self-follows are invalid input;
	// an existing edge is a conflict.
	Follow(ctx context.Context, followerID, followeeID string, now time.Time) error

	// Unfollow removes the edge; a missing edge is not-found.
	Unfollow(ctx context.Context, followerID, followeeID string) error

	// Counts returns how many accounts follow accountID and how many it follows.
	Counts(ctx context.Context, accountID string) (followers, following int, err error)

	// PurgeAccount removes every edge touching a deleted account.
	PurgeAccount(ctx context.Context, accountID string) error
}
