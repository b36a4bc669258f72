package likes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DibuBaj/Backend/cmd/identity"
)

// PostgresStore implements like persistence over PostgreSQL.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// NewPostgresStore constructs a PostgresStore. The pool is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool, schema string) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("likes: nil pool")
	}
	schema = strings.TrimSpace(schema)
	if schema == "" {
		schema = "recipehub"
	}
	return &PostgresStore{pool: pool, schema: schema}, nil
}

func (s *PostgresStore) table() string {
	return pgx.Identifier{s.schema, "likes"}.Sanitize()
}

func (s *PostgresStore) Toggle(ctx context.Context, recipeID, accountID string, now time.Time) (bool, error) {
	const op = "likes.Toggle"

	if strings.TrimSpace(recipeID) == "" || strings.TrimSpace(accountID) == "" {
		return false, identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "missing id"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	// Unlike first; if nothing was there, like. The primary key makes the
	// insert race-safe: a concurrent duplicate like collapses into one row.
	ct, err := s.pool.Exec(ctx,
		`DELETE FROM `+s.table()+` WHERE recipe_id = $1 AND account_id = $2`,
		recipeID, accountID,
	)
	if err != nil {
		return false, err
	}
	if ct.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+s.table()+` (recipe_id, account_id, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (recipe_id, account_id) DO NOTHING`,
		recipeID, accountID, now,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) CountForRecipe(ctx context.Context, recipeID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM `+s.table()+` WHERE recipe_id = $1`, recipeID,
	).Scan(&n)
	return n, err
}

func (s *PostgresStore) LikedRecipeIDs(ctx context.Context, accountID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT recipe_id FROM `+s.table()+`
		  WHERE account_id = $1
		  ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *PostgresStore) PurgeRecipe(ctx context.Context, recipeID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM `+s.table()+` WHERE recipe_id = $1`, recipeID)
	return err
}

func (s *PostgresStore) PurgeAccount(ctx context.Context, accountID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM `+s.table()+` WHERE account_id = $1`, accountID)
	return err
}
