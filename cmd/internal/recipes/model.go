package recipes

import "time"

// Category buckets a recipe by meal.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategorySnack     Category = "snack"
	CategoryDinner    Category = "dinner"
)

// ValidCategory reports whether c is one of the known meal categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategorySnack, CategoryDinner:
		return true
	}
	return false
}

// Recipe is a published dish with its preparation steps.
type Recipe struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`

	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`

	ImageURL string `json:"image,omitempty"`
	ImageID  string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
