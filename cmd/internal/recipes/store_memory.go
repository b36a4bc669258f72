package recipes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity"
	"github.com/DibuBaj/Backend/cmd/identity/ids"
)

// MemoryStore is an in-process Store for development mode and tests.
type MemoryStore struct {
	mu      sync.Mutex
	recipes map[string]Recipe
}

// NewMemoryStore returns an empty in-memory recipe store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recipes: make(map[string]Recipe)}
}

func (m *MemoryStore) Create(ctx context.Context, in CreateInput) (Recipe, error) {
	const op = "recipes.Create"

	if err := ctx.Err(); err != nil {
		return Recipe{}, err
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "missing owner"}
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "name and description are required"}
	}
	if !ValidCategory(in.Category) {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "unknown category"}
	}
	if len(in.Ingredients) == 0 || len(in.Instructions) == 0 {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "ingredients and instructions are required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	id, err := ids.NewULID(now)
	if err != nil {
		return Recipe{}, err
	}

	r := Recipe{
		ID:           id,
		OwnerID:      in.OwnerID,
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Category:     in.Category,
		Ingredients:  append([]string(nil), in.Ingredients...),
		Instructions: append([]string(nil), in.Instructions...),
		ImageURL:     in.ImageURL,
		ImageID:      in.ImageID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	m.mu.Lock()
	m.recipes[r.ID] = r
	m.mu.Unlock()
	return r, nil
}

func (m *MemoryStore) ByID(ctx context.Context, id string) (Recipe, error) {
	const op = "recipes.ByID"

	if err := ctx.Err(); err != nil {
		return Recipe{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return Recipe{}, identity.NotFoundError{Op: op, Resource: "recipe"}
	}
	return cloneRecipe(r), nil
}

func (m *MemoryStore) List(ctx context.Context, f Filter) ([]Recipe, error) {
	const op = "recipes.List"

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Category != "" && !ValidCategory(f.Category) {
		return nil, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "unknown category"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Recipe{}
	for _, r := range m.recipes {
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.OwnerID != "" && r.OwnerID != f.OwnerID {
			continue
		}
		out = append(out, cloneRecipe(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) UpdateDetails(ctx context.Context, in UpdateDetailsInput) (Recipe, error) {
	const op = "recipes.UpdateDetails"

	if err := ctx.Err(); err != nil {
		return Recipe{}, err
	}
	if in.Name == nil && in.Description == nil && in.Category == nil {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "nothing to update"}
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[in.ID]
	if !ok || r.OwnerID != in.OwnerID {
		return Recipe{}, identity.NotFoundError{Op: op, Resource: "recipe"}
	}
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "name cannot be blank"}
		}
		r.Name = v
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		if v == "" {
			return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "description cannot be blank"}
		}
		r.Description = v
	}
	if in.Category != nil {
		if !ValidCategory(*in.Category) {
			return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "unknown category"}
		}
		r.Category = *in.Category
	}
	r.UpdatedAt = now
	m.recipes[r.ID] = r
	return cloneRecipe(r), nil
}

func (m *MemoryStore) SetImage(ctx context.Context, id, ownerID, imageURL, imageID string, now time.Time) (Recipe, string, error) {
	const op = "recipes.SetImage"

	if err := ctx.Err(); err != nil {
		return Recipe{}, "", err
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok || r.OwnerID != ownerID {
		return Recipe{}, "", identity.NotFoundError{Op: op, Resource: "recipe"}
	}
	old := r.ImageID
	r.ImageURL = imageURL
	r.ImageID = imageID
	r.UpdatedAt = now
	m.recipes[id] = r
	return cloneRecipe(r), old, nil
}

func (m *MemoryStore) SetLists(ctx context.Context, id, ownerID string, ingredients, instructions []string, now time.Time) (Recipe, error) {
	const op = "recipes.SetLists"

	if err := ctx.Err(); err != nil {
		return Recipe{}, err
	}
	if len(ingredients) == 0 || len(instructions) == 0 {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "lists cannot be emptied"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok || r.OwnerID != ownerID {
		return Recipe{}, identity.NotFoundError{Op: op, Resource: "recipe"}
	}
	r.Ingredients = append([]string(nil), ingredients...)
	r.Instructions = append([]string(nil), instructions...)
	r.UpdatedAt = now
	m.recipes[id] = r
	return cloneRecipe(r), nil
}

func (m *MemoryStore) Delete(ctx context.Context, id, ownerID string) (Recipe, error) {
	const op = "recipes.Delete"

	if err := ctx.Err(); err != nil {
		return Recipe{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok || r.OwnerID != ownerID {
		return Recipe{}, identity.NotFoundError{Op: op, Resource: "recipe"}
	}
	delete(m.recipes, id)
	return cloneRecipe(r), nil
}

func (m *MemoryStore) DeleteByOwner(ctx context.Context, ownerID string) ([]Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Recipe
	for id, r := range m.recipes {
		if r.OwnerID == ownerID {
			out = append(out, cloneRecipe(r))
			delete(m.recipes, id)
		}
	}
	return out, nil
}

func cloneRecipe(r Recipe) Recipe {
	r.Ingredients = append([]string(nil), r.Ingredients...)
	r.Instructions = append([]string(nil), r.Instructions...)
	return r
}
