package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements account persistence over PostgreSQL.
//
// English design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Schema/table identifiers are safely quoted to avoid SQL injection via identifiers.
// - SwapRefreshTokenHash is a single conditional UPDATE; the WHERE clause on
//   the stored hash makes concurrent rotations resolve to one winner without
//   explicit row locks.
// - Errors are mapped to identity sentinel kinds where appropriate.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the account store (default "recipehub").
// The schema name is validated to be a legal PostgreSQL identifier.
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("identity: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("identity: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore with secure defaults.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "recipehub",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return st, nil
}

const accountColumns = `id, username, username_norm, email, email_norm, full_name,
       avatar_url, avatar_id, role, password_hash, refresh_token_hash, created_at, updated_at`

// CreateAccount creates a new account with a hashed password.
func (s *PostgresStore) CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error) {
	const op = "identity.CreateAccount"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	fullName := strings.TrimSpace(in.FullName)

	if username == "" {
		return Account{}, pgInvalid(op, "username is required")
	}
	if email == "" {
		return Account{}, pgInvalid(op, "email is required")
	}
	if fullName == "" {
		return Account{}, pgInvalid(op, "full name is required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return Account{}, pgInvalid(op, "password is required")
	}

	role := in.Role
	if role == "" {
		role = RoleRegular
	}
	if !ValidRole(role) {
		return Account{}, pgInvalid(op, "unknown role")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	pwHash, err := HashPassword(in.Password)
	if err != nil {
		return Account{}, err
	}

	id, err := NewULID(now)
	if err != nil {
		return Account{}, err
	}

	acct := Account{
		ID:           id,
		Username:     username,
		UsernameNorm: NormalizeUsername(username),
		Email:        email,
		EmailNorm:    NormalizeEmail(email),
		FullName:     fullName,
		AvatarURL:    strings.TrimSpace(in.AvatarURL),
		AvatarID:     strings.TrimSpace(in.AvatarID),
		Role:         role,
		PasswordHash: pwHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	accounts := pgIdent(s.schema, "accounts")
	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+accounts+` (
		     id, username, username_norm, email, email_norm, full_name,
		     avatar_url, avatar_id, role, password_hash, created_at, updated_at
		   ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		acct.ID, acct.Username, acct.UsernameNorm, acct.Email, acct.EmailNorm,
		acct.FullName, acct.AvatarURL, acct.AvatarID, string(acct.Role), acct.PasswordHash, now,
	)
	if err != nil {
		if field, ok := pgClassifyUniqueViolation(err); ok {
			return Account{}, ConflictError{Op: op, Field: field}
		}
		return Account{}, err
	}

	return acct, nil
}

// AccountByID loads a single account by primary key.
func (s *PostgresStore) AccountByID(ctx context.Context, id string) (Account, error) {
	const op = "identity.AccountByID"

	if strings.TrimSpace(id) == "" {
		return Account{}, pgInvalid(op, "missing account id")
	}
	accounts := pgIdent(s.schema, "accounts")
	return s.scanAccount(ctx, op,
		`SELECT `+accountColumns+` FROM `+accounts+` WHERE id = $1`, id)
}

// AccountByIdentifier resolves a username-or-email login identifier.
func (s *PostgresStore) AccountByIdentifier(ctx context.Context, identifier string) (Account, error) {
	const op = "identity.AccountByIdentifier"

	norm := NormalizeUsername(identifier)
	if norm == "" {
		return Account{}, pgInvalid(op, "missing identifier")
	}
	accounts := pgIdent(s.schema, "accounts")
	return s.scanAccount(ctx, op,
		`SELECT `+accountColumns+`
		   FROM `+accounts+`
		  WHERE username_norm = $1 OR email_norm = $1`, norm)
}

// SetRefreshTokenHash unconditionally overwrites (or clears) the stored hash.
func (s *PostgresStore) SetRefreshTokenHash(ctx context.Context, accountID string, hash *string, now time.Time) error {
	const op = "identity.SetRefreshTokenHash"

	if strings.TrimSpace(accountID) == "" {
		return pgInvalid(op, "missing account id")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	accounts := pgIdent(s.schema, "accounts")
	ct, err := s.pool.Exec(ctx,
		`UPDATE `+accounts+`
		    SET refresh_token_hash = $1,
		        updated_at = $2
		  WHERE id = $3`,
		hash, now, accountID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return NotFoundError{Op: op, Resource: "account"}
	}
	return nil
}

// SwapRefreshTokenHash is the rotation CAS.
// The conditional WHERE makes reuse of a superseded token fail here, which
// callers must treat as a rejection, not a retry.
func (s *PostgresStore) SwapRefreshTokenHash(ctx context.Context, accountID, oldHash, newHash string, now time.Time) error {
	const op = "identity.SwapRefreshTokenHash"

	if strings.TrimSpace(accountID) == "" {
		return pgInvalid(op, "missing account id")
	}
	if oldHash == "" || newHash == "" {
		return pgInvalid(op, "missing token hash")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	accounts := pgIdent(s.schema, "accounts")
	ct, err := s.pool.Exec(ctx,
		`UPDATE `+accounts+`
		    SET refresh_token_hash = $1,
		        updated_at = $2
		  WHERE id = $3
		    AND refresh_token_hash = $4`,
		newHash, now, accountID, oldHash,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	// Distinguish a vanished account from a lost race / stale token.
	var one int
	err = s.pool.QueryRow(ctx,
		`SELECT 1 FROM `+accounts+` WHERE id = $1`, accountID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFoundError{Op: op, Resource: "account"}
	}
	if err != nil {
		return err
	}
	return notActiveSwap()
}

// UpdateDetails applies a partial profile update and returns the fresh row.
func (s *PostgresStore) UpdateDetails(ctx context.Context, in UpdateDetailsInput) (Account, error) {
	const op = "identity.UpdateDetails"

	if strings.TrimSpace(in.AccountID) == "" {
		return Account{}, pgInvalid(op, "missing account id")
	}
	if in.FullName == nil && in.Email == nil {
		return Account{}, pgInvalid(op, "nothing to update")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var fullName *string
	if in.FullName != nil {
		v := strings.TrimSpace(*in.FullName)
		if v == "" {
			return Account{}, pgInvalid(op, "full name cannot be blank")
		}
		fullName = &v
	}
	var email, emailNorm *string
	if in.Email != nil {
		v := strings.TrimSpace(*in.Email)
		if v == "" {
			return Account{}, pgInvalid(op, "email cannot be blank")
		}
		n := NormalizeEmail(v)
		email, emailNorm = &v, &n
	}

	accounts := pgIdent(s.schema, "accounts")
	row := s.pool.QueryRow(ctx,
		`UPDATE `+accounts+`
		    SET full_name  = COALESCE($1, full_name),
		        email      = COALESCE($2, email),
		        email_norm = COALESCE($3, email_norm),
		        updated_at = $4
		  WHERE id = $5
		  RETURNING `+accountColumns,
		fullName, email, emailNorm, now, in.AccountID,
	)
	acct, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFoundError{Op: op, Resource: "account"}
		}
		if field, ok := pgClassifyUniqueViolation(err); ok {
			return Account{}, ConflictError{Op: op, Field: field}
		}
		return Account{}, err
	}
	return acct, nil
}

// UpdateAvatar replaces the avatar image reference.
func (s *PostgresStore) UpdateAvatar(ctx context.Context, accountID, avatarURL, avatarID string, now time.Time) (Account, error) {
	const op = "identity.UpdateAvatar"

	if strings.TrimSpace(accountID) == "" {
		return Account{}, pgInvalid(op, "missing account id")
	}
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return Account{}, pgInvalid(op, "missing avatar url")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	accounts := pgIdent(s.schema, "accounts")
	row := s.pool.QueryRow(ctx,
		`UPDATE `+accounts+`
		    SET avatar_url = $1, avatar_id = $2, updated_at = $3
		  WHERE id = $4
		  RETURNING `+accountColumns,
		avatarURL, strings.TrimSpace(avatarID), now, accountID,
	)
	acct, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFoundError{Op: op, Resource: "account"}
		}
		return Account{}, err
	}
	return acct, nil
}

// UpdatePasswordHash swaps the credential hash.
func (s *PostgresStore) UpdatePasswordHash(ctx context.Context, accountID, passwordHash string, now time.Time) error {
	const op = "identity.UpdatePasswordHash"

	if strings.TrimSpace(accountID) == "" {
		return pgInvalid(op, "missing account id")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return pgInvalid(op, "missing password hash")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	accounts := pgIdent(s.schema, "accounts")
	ct, err := s.pool.Exec(ctx,
		`UPDATE `+accounts+`
		    SET password_hash = $1, updated_at = $2
		  WHERE id = $3`,
		passwordHash, now, accountID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return NotFoundError{Op: op, Resource: "account"}
	}
	return nil
}

// DeleteAccount removes the account row. Dependent rows (recipes, likes,
// follows) cascade at the schema level.
func (s *PostgresStore) DeleteAccount(ctx context.Context, accountID string) error {
	const op = "identity.DeleteAccount"

	if strings.TrimSpace(accountID) == "" {
		return pgInvalid(op, "missing account id")
	}

	accounts := pgIdent(s.schema, "accounts")
	ct, err := s.pool.Exec(ctx,
		`DELETE FROM `+accounts+` WHERE id = $1`, accountID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return NotFoundError{Op: op, Resource: "account"}
	}
	return nil
}

// ---- helpers ----

func (s *PostgresStore) scanAccount(ctx context.Context, op, query string, args ...any) (Account, error) {
	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	acct, err := scanAccountRow(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFoundError{Op: op, Resource: "account"}
		}
		return Account{}, err
	}
	return acct, nil
}

func scanAccountRow(row pgx.Row) (Account, error) {
	var (
		acct Account
		role string
	)
	err := row.Scan(
		&acct.ID, &acct.Username, &acct.UsernameNorm,
		&acct.Email, &acct.EmailNorm, &acct.FullName,
		&acct.AvatarURL, &acct.AvatarID, &role, &acct.PasswordHash,
		&acct.RefreshTokenHash, &acct.CreatedAt, &acct.UpdatedAt,
	)
	if err != nil {
		return Account{}, err
	}
	acct.Role = Role(role)
	return acct, nil
}

// pgInvalid standardizes invalid input errors.
func pgInvalid(op, msg string) error {
	return OpError{Op: op, Kind: ErrInvalidInput, Msg: msg}
}

// pgIdent safely quotes a schema-qualified identifier: "schema"."name".
func pgIdent(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}

func pgClassifyUniqueViolation(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != "23505" { // unique_violation
		return "", false
	}

	// Prefer stable schema constraint names. Fall back to heuristic substring matching.
	c := strings.ToLower(strings.TrimSpace(pgErr.ConstraintName))
	switch c {
	case "uq_accounts_username_norm":
		return "username", true
	case "uq_accounts_email_norm":
		return "email", true
	default:
		switch {
		case strings.Contains(c, "username"):
			return "username", true
		case strings.Contains(c, "email"):
			return "email", true
		default:
			return "unique", true
		}
	}
}
