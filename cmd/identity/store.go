package identity

import (
	"context"
	"time"
)

// CreateAccountInput describes an account registration request.
// Username, Email, FullName and Password are required. AvatarURL/AvatarID
// (the public URL and the image-host key) may be empty.
type CreateAccountInput struct {
	Username  string
	Email     string
	FullName  string
	AvatarURL string
	AvatarID  string
	Password  string
	Role      Role
	Now       time.Time
}

// UpdateDetailsInput carries a partial profile update.
// Nil fields are left untouched.
type UpdateDetailsInput struct {
	AccountID string
	FullName  *string
	Email     *string
	Now       time.Time
}

// Store is the account persistence boundary.
//
// Refresh-token contract:
//   - Only the refresh-token hash is ever stored; the plain token stays with
//     the client.
//   - An account holds at most one live refresh-token hash. Writing a new one
//     invalidates whatever was there before.
//   - SwapRefreshTokenHash is the compare-and-swap used by rotation: it
//     succeeds only if the stored hash still equals oldHash, so concurrent
//     rotations resolve to exactly one winner.
type Store interface {
	CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error)
	AccountByID(ctx context.Context, id string) (Account, error)

	// AccountByIdentifier resolves a login identifier that may be either a
	// username or an email address (matched case-insensitively).
	AccountByIdentifier(ctx context.Context, identifier string) (Account, error)

	// SetRefreshTokenHash unconditionally overwrites the stored hash.
	// Pass nil to clear it (logout). Clearing is idempotent.
	SetRefreshTokenHash(ctx context.Context, accountID string, hash *string, now time.Time) error

	// SwapRefreshTokenHash replaces oldHash with newHash only if oldHash is
	// still the stored value. Returns ErrNotActive if the stored hash has
	// changed or is empty, ErrNotFound if the account is gone.
	SwapRefreshTokenHash(ctx context.Context, accountID, oldHash, newHash string, now time.Time) error

	UpdateDetails(ctx context.Context, in UpdateDetailsInput) (Account, error)
	// UpdateAvatar replaces the avatar reference. avatarID is the image-host
	// key of the new object; the caller deletes the old one.
	UpdateAvatar(ctx context.Context, accountID, avatarURL, avatarID string, now time.Time) (Account, error)
	UpdatePasswordHash(ctx context.Context, accountID, passwordHash string, now time.Time) error

	DeleteAccount(ctx context.Context, accountID string) error
}
