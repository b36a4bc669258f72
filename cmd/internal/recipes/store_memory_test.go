package recipes

import (
	"context"
	"testing"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity"
)

func seedRecipe(t *testing.T, m *MemoryStore, owner, name string, cat Category) Recipe {
	t.Helper()
	r, err := m.Create(context.Background(), CreateInput{
		OwnerID:      owner,
		Name:         name,
		Description:  "a test dish",
		Category:     cat,
		Ingredients:  []string{"flour", "water"},
		Instructions: []string{"mix", "bake"},
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return r
}

func TestCreateValidation(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing owner", CreateInput{Name: "x", Description: "y", Category: CategoryLunch, Ingredients: []string{"a"}, Instructions: []string{"b"}}},
		{"missing name", CreateInput{OwnerID: "o", Description: "y", Category: CategoryLunch, Ingredients: []string{"a"}, Instructions: []string{"b"}}},
		{"bad category", CreateInput{OwnerID: "o", Name: "x", Description: "y", Category: "brunch", Ingredients: []string{"a"}, Instructions: []string{"b"}}},
		{"no ingredients", CreateInput{OwnerID: "o", Name: "x", Description: "y", Category: CategoryLunch, Instructions: []string{"b"}}},
		{"no instructions", CreateInput{OwnerID: "o", Name: "x", Description: "y", Category: CategoryLunch, Ingredients: []string{"a"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := m.Create(ctx, tc.in); !identity.IsInvalidInput(err) {
				t.Fatalf("err = %v, want invalid input", err)
			}
		})
	}
}

func TestListFilters(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	seedRecipe(t, m, "owner-a", "pancakes", CategoryBreakfast)
	seedRecipe(t, m, "owner-a", "soup", CategoryLunch)
	seedRecipe(t, m, "owner-b", "omelette", CategoryBreakfast)

	all, err := m.List(ctx, Filter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v (n=%d)", err, len(all))
	}

	breakfast, err := m.List(ctx, Filter{Category: CategoryBreakfast})
	if err != nil || len(breakfast) != 2 {
		t.Fatalf("breakfast: %v (n=%d)", err, len(breakfast))
	}

	mine, err := m.List(ctx, Filter{OwnerID: "owner-a"})
	if err != nil || len(mine) != 2 {
		t.Fatalf("owner: %v (n=%d)", err, len(mine))
	}

	both, err := m.List(ctx, Filter{Category: CategoryBreakfast, OwnerID: "owner-b"})
	if err != nil || len(both) != 1 || both[0].Name != "omelette" {
		t.Fatalf("combined filter: %v (%+v)", err, both)
	}

	if _, err := m.List(ctx, Filter{Category: "brunch"}); !identity.IsInvalidInput(err) {
		t.Fatalf("bad category filter: err = %v", err)
	}
}

func TestOwnershipReadsAsNotFound(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	r := seedRecipe(t, m, "owner-a", "tart", CategoryDinner)
	now := time.Now().UTC()

	name := "stolen tart"
	if _, err := m.UpdateDetails(ctx, UpdateDetailsInput{ID: r.ID, OwnerID: "intruder", Name: &name}); !identity.IsNotFound(err) {
		t.Fatalf("update by non-owner: err = %v, want not found", err)
	}
	if _, _, err := m.SetImage(ctx, r.ID, "intruder", "u", "i", now); !identity.IsNotFound(err) {
		t.Fatalf("set image by non-owner: err = %v", err)
	}
	if _, err := m.Delete(ctx, r.ID, "intruder"); !identity.IsNotFound(err) {
		t.Fatalf("delete by non-owner: err = %v", err)
	}

	// Owner still sees the unmodified recipe.
	got, err := m.ByID(ctx, r.ID)
	if err != nil || got.Name != "tart" {
		t.Fatalf("recipe mutated: %v (%+v)", err, got)
	}
}

func TestUpdateAndListsAndDelete(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	r := seedRecipe(t, m, "owner-a", "stew", CategoryDinner)
	now := time.Now().UTC()

	cat := CategoryLunch
	upd, err := m.UpdateDetails(ctx, UpdateDetailsInput{ID: r.ID, OwnerID: "owner-a", Category: &cat, Now: now})
	if err != nil || upd.Category != CategoryLunch {
		t.Fatalf("update category: %v (%+v)", err, upd)
	}

	upd, err = m.SetLists(ctx, r.ID, "owner-a", []string{"flour", "water", "salt"}, []string{"mix", "rest", "bake"}, now)
	if err != nil || len(upd.Ingredients) != 3 || len(upd.Instructions) != 3 {
		t.Fatalf("set lists: %v (%+v)", err, upd)
	}
	if _, err := m.SetLists(ctx, r.ID, "owner-a", nil, []string{"x"}, now); !identity.IsInvalidInput(err) {
		t.Fatalf("empty list: err = %v", err)
	}

	upd, old, err := m.SetImage(ctx, r.ID, "owner-a", "https://img/x.png", "img-2", now)
	if err != nil || old != "" || upd.ImageID != "img-2" {
		t.Fatalf("set image: %v (old=%q)", err, old)
	}
	_, old, err = m.SetImage(ctx, r.ID, "owner-a", "https://img/y.png", "img-3", now)
	if err != nil || old != "img-2" {
		t.Fatalf("second set image: %v (old=%q)", err, old)
	}

	deleted, err := m.Delete(ctx, r.ID, "owner-a")
	if err != nil || deleted.ImageID != "img-3" {
		t.Fatalf("delete: %v (%+v)", err, deleted)
	}
	if _, err := m.ByID(ctx, r.ID); !identity.IsNotFound(err) {
		t.Fatalf("recipe survived delete: %v", err)
	}
}

func TestDeleteByOwner(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	seedRecipe(t, m, "owner-a", "one", CategorySnack)
	seedRecipe(t, m, "owner-a", "two", CategorySnack)
	keep := seedRecipe(t, m, "owner-b", "three", CategorySnack)

	gone, err := m.DeleteByOwner(ctx, "owner-a")
	if err != nil || len(gone) != 2 {
		t.Fatalf("delete by owner: %v (n=%d)", err, len(gone))
	}
	if _, err := m.ByID(ctx, keep.ID); err != nil {
		t.Fatalf("unrelated recipe lost: %v", err)
	}
}
