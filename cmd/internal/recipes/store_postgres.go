package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DibuBaj/Backend/cmd/identity"
	"github.com/DibuBaj/Backend/cmd/identity/ids"
)

// PostgresStore implements recipe persistence over PostgreSQL.
// Ingredient and instruction lists are stored as jsonb; pgx round-trips them
// to []string directly.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// NewPostgresStore constructs a PostgresStore. The pool is owned by the
// caller and must not be closed here.
func NewPostgresStore(pool *pgxpool.Pool, schema string) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("recipes: nil pool")
	}
	schema = strings.TrimSpace(schema)
	if schema == "" {
		schema = "recipehub"
	}
	return &PostgresStore{pool: pool, schema: schema}, nil
}

const recipeColumns = `id, owner_id, name, description, category,
       ingredients, instructions, image_url, image_id, created_at, updated_at`

func (s *PostgresStore) table() string {
	return pgx.Identifier{s.schema, "recipes"}.Sanitize()
}

func (s *PostgresStore) Create(ctx context.Context, in CreateInput) (Recipe, error) {
	const op = "recipes.Create"

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
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		ImageURL:     in.ImageURL,
		ImageID:      in.ImageID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+s.table()+` (
		     id, owner_id, name, description, category,
		     ingredients, instructions, image_url, image_id, created_at, updated_at
		   ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		r.ID, r.OwnerID, r.Name, r.Description, string(r.Category),
		r.Ingredients, r.Instructions, r.ImageURL, r.ImageID, now,
	)
	if err != nil {
		return Recipe{}, err
	}
	return r, nil
}

func (s *PostgresStore) ByID(ctx context.Context, id string) (Recipe, error) {
	const op = "recipes.ByID"

	if strings.TrimSpace(id) == "" {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "missing recipe id"}
	}
	row := s.pool.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM `+s.table()+` WHERE id = $1`, id)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipe{}, identity.NotFoundError{Op: op, Resource: "recipe"}
		}
		return Recipe{}, err
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Recipe, error) {
	const op = "recipes.List"

	if f.Category != "" && !ValidCategory(f.Category) {
		return nil, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "unknown category"}
	}

	q := `SELECT ` + recipeColumns + ` FROM ` + s.table() + ` WHERE 1=1`
	args := []any{}
	if f.Category != "" {
		args = append(args, string(f.Category))
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		q += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateDetails(ctx context.Context, in UpdateDetailsInput) (Recipe, error) {
	const op = "recipes.UpdateDetails"

	if in.Name == nil && in.Description == nil && in.Category == nil {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "nothing to update"}
	}
	var name, desc, cat *string
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "name cannot be blank"}
		}
		name = &v
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		if v == "" {
			return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "description cannot be blank"}
		}
		desc = &v
	}
	if in.Category != nil {
		if !ValidCategory(*in.Category) {
			return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "unknown category"}
		}
		v := string(*in.Category)
		cat = &v
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE `+s.table()+`
		    SET name        = COALESCE($1, name),
		        description = COALESCE($2, description),
		        category    = COALESCE($3, category),
		        updated_at  = $4
		  WHERE id = $5 AND owner_id = $6
		  RETURNING `+recipeColumns,
		name, desc, cat, now, in.ID, in.OwnerID,
	)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipe{}, identity.NotFoundError{Op: op, Resource: "recipe"}
		}
		return Recipe{}, err
	}
	return r, nil
}

func (s *PostgresStore) SetImage(ctx context.Context, id, ownerID, imageURL, imageID string, now time.Time) (Recipe, string, error) {
	const op = "recipes.SetImage"

	if now.IsZero() {
		now = time.Now().UTC()
	}
	var oldImageID string
	row := s.pool.QueryRow(ctx,
		`UPDATE `+s.table()+` r
		    SET image_url = $1, image_id = $2, updated_at = $3
		   FROM (SELECT id, image_id AS old_image_id FROM `+s.table()+` WHERE id = $4 AND owner_id = $5) prev
		  WHERE r.id = prev.id
		  RETURNING `+prefixedRecipeColumns("r")+`, prev.old_image_id`,
		imageURL, imageID, now, id, ownerID,
	)
	r, err := scanRecipeWith(row, &oldImageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipe{}, "", identity.NotFoundError{Op: op, Resource: "recipe"}
		}
		return Recipe{}, "", err
	}
	return r, oldImageID, nil
}

func (s *PostgresStore) SetLists(ctx context.Context, id, ownerID string, ingredients, instructions []string, now time.Time) (Recipe, error) {
	const op = "recipes.SetLists"

	if len(ingredients) == 0 || len(instructions) == 0 {
		return Recipe{}, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "lists cannot be emptied"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE `+s.table()+`
		    SET ingredients = $1, instructions = $2, updated_at = $3
		  WHERE id = $4 AND owner_id = $5
		  RETURNING `+recipeColumns,
		ingredients, instructions, now, id, ownerID,
	)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipe{}, identity.NotFoundError{Op: op, Resource: "recipe"}
		}
		return Recipe{}, err
	}
	return r, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id, ownerID string) (Recipe, error) {
	const op = "recipes.Delete"

	row := s.pool.QueryRow(ctx,
		`DELETE FROM `+s.table()+`
		  WHERE id = $1 AND owner_id = $2
		  RETURNING `+recipeColumns,
		id, ownerID,
	)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipe{}, identity.NotFoundError{Op: op, Resource: "recipe"}
		}
		return Recipe{}, err
	}
	return r, nil
}

func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerID string) ([]Recipe, error) {
	const op = "recipes.DeleteByOwner"

	if strings.TrimSpace(ownerID) == "" {
		return nil, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "missing owner"}
	}
	rows, err := s.pool.Query(ctx,
		`DELETE FROM `+s.table()+` WHERE owner_id = $1 RETURNING `+recipeColumns,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ---- helpers ----

func prefixedRecipeColumns(alias string) string {
	cols := strings.Split(recipeColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func scanRecipe(row pgx.Row) (Recipe, error) {
	return scanRecipeWith(row)
}

func scanRecipeWith(row pgx.Row, extra ...any) (Recipe, error) {
	var (
		r   Recipe
		cat string
	)
	dest := []any{
		&r.ID, &r.OwnerID, &r.Name, &r.Description, &cat,
		&r.Ingredients, &r.Instructions, &r.ImageURL, &r.ImageID,
		&r.CreatedAt, &r.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return Recipe{}, err
	}
	r.Category = Category(cat)
	return r, nil
}
