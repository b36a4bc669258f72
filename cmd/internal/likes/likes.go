// Package likes tracks which accounts like which recipes.
package likes

import (
	"context"
	"time"
)

// Store is the like persistence boundary.
//
// A like is a bare (recipe, account) pair; toggling it twice returns the
// world to its prior state.
type Store interface {
	// Toggle flips the like state and reports the resulting state:
	// true when the call liked the recipe, false when it unliked it.
	Toggle(ctx context.Context, recipeID, accountID string, now time.Time) (bool, error)

	// CountForRecipe returns the number of likes on a recipe.
	CountForRecipe(ctx context.Context, recipeID string) (int, error)

	// LikedRecipeIDs lists the recipes an account has liked, newest first.
	LikedRecipeIDs(ctx context.Context, accountID string) ([]string, error)

	// PurgeRecipe drops all likes for a deleted recipe.
	PurgeRecipe(ctx context.Context, recipeID string) error

	// PurgeAccount drops all likes made by a deleted account.
	PurgeAccount(ctx context.Context, accountID string) error
}
