package recipes

import (
	"context"
	"time"
)

// CreateInput describes a new recipe. All fields except image are required;
// validation beyond presence lives in the HTTP layer.
type CreateInput struct {
	OwnerID      string
	Name         string
	Description  string
	Category     Category
	Ingredients  []string
	Instructions []string
	ImageURL     string
	ImageID      string
	Now          time.Time
}

// UpdateDetailsInput is a partial update; nil fields stay untouched.
// OwnerID scopes the update: a mismatch reads as not-found.
type UpdateDetailsInput struct {
	ID          string
	OwnerID     string
	Name        *string
	Description *string
	Category    *Category
	Now         time.Time
}

// Filter narrows List. Zero values mean "any".
type Filter struct {
	Category Category
	OwnerID  string
}

// Store is the recipe persistence boundary.
//
// Every mutating call is owner-scoped: the row must both exist and belong to
// OwnerID, otherwise the store reports not-found.
type Store interface {
	Create(ctx context.Context, in CreateInput) (Recipe, error)
	ByID(ctx context.Context, id string) (Recipe, error)
	List(ctx context.Context, f Filter) ([]Recipe, error)

	UpdateDetails(ctx context.Context, in UpdateDetailsInput) (Recipe, error)

	// SetImage swaps the image reference and returns the updated recipe plus
	// the previous image id (empty if none) so the caller can clean it up.
	SetImage(ctx context.Context, id, ownerID, imageURL, imageID string, now time.Time) (Recipe, string, error)

	// SetLists replaces both editable lists wholesale. Index-level edits are
	// computed by the caller against a fresh read.
	SetLists(ctx context.Context, id, ownerID string, ingredients, instructions []string, now time.Time) (Recipe, error)

	// Delete removes the recipe and returns the deleted row for image cleanup.
	Delete(ctx context.Context, id, ownerID string) (Recipe, error)

	// DeleteByOwner removes all recipes for an account (account deletion) and
	// returns the deleted rows so their images can be cleaned up.
	DeleteByOwner(ctx context.Context, ownerID string) ([]Recipe, error)
}
