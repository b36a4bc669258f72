package follows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DibuBaj/Backend/cmd/identity"
)

// PostgresStore implements the follow graph over PostgreSQL.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// NewPostgresStore constructs a PostgresStore. The pool is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool, schema string) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("follows: nil pool")
	}
	schema = strings.TrimSpace(schema)
	if schema == "" {
		schema = "recipehub"
	}
	return &PostgresStore{pool: pool, schema: schema}, nil
}

func (s *PostgresStore) table() string {
	return pgx.Identifier{s.schema, "follows"}.Sanitize()
}

func (s *PostgresStore) Follow(ctx context.Context, followerID, followeeID string, now time.Time) error {
	const op = "follows.Follow"

	if strings.TrimSpace(followerID) == "" || strings.TrimSpace(followeeID) == "" {
		return identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "missing id"}
	}
	if followerID == followeeID {
		return identity.OpError{Op: op, Kind: identity.ErrInvalidInput, Msg: "cannot follow yourself"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+s.table()+` (follower_id, followee_id, created_at)
		 VALUES ($1, $2, $3)`,
		followerID, followeeID, now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return identity.ConflictError{Op: op, Field: "follow"}
			case "23503": // foreign_key_violation
				return identity.NotFoundError{Op: op, Resource: "account"}
			}
		}
		return err
	}
	return nil
}

func (s *PostgresStore) Unfollow(ctx context.Context, followerID, followeeID string) error {
	const op = "follows.Unfollow"

	ct, err := s.pool.Exec(ctx,
		`DELETE FROM `+s.table()+` WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return identity.NotFoundError{Op: op, Resource: "follow"}
	}
	return nil
}

func (s *PostgresStore) Counts(ctx context.Context, accountID string) (int, int, error) {
	var followers, following int
	err := s.pool.QueryRow(ctx,
		`SELECT
		   (SELECT count(*) FROM `+s.table()+` WHERE followee_id = $1),
		   (SELECT count(*) FROM `+s.table()+` WHERE follower_id = $1)`,
		accountID,
	).Scan(&followers, &following)
	return followers, following, err
}

func (s *PostgresStore) PurgeAccount(ctx context.Context, accountID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM `+s.table()+` WHERE follower_id = $1 OR followee_id = $1`,
		accountID,
	)
	return err
}
