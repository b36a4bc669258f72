package identity

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for development mode and tests.
// It mirrors the Postgres store's semantics, including the rotation CAS.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]Account // keyed by ID
}

// NewMemoryStore returns an empty in-memory account store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]Account)}
}

func (m *MemoryStore) CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error) {
	const op = "identity.CreateAccount"

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

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.UsernameNorm == acct.UsernameNorm {
			return Account{}, ConflictError{Op: op, Field: "username"}
		}
		if existing.EmailNorm == acct.EmailNorm {
			return Account{}, ConflictError{Op: op, Field: "email"}
		}
	}
	m.accounts[acct.ID] = acct
	return acct, nil
}

func (m *MemoryStore) AccountByID(ctx context.Context, id string) (Account, error) {
	const op = "identity.AccountByID"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[id]
	if !ok {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	return acct, nil
}

func (m *MemoryStore) AccountByIdentifier(ctx context.Context, identifier string) (Account, error) {
	const op = "identity.AccountByIdentifier"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	norm := NormalizeUsername(identifier)
	if norm == "" {
		return Account{}, pgInvalid(op, "missing identifier")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.UsernameNorm == norm || acct.EmailNorm == norm {
			return acct, nil
		}
	}
	return Account{}, NotFoundError{Op: op, Resource: "account"}
}

func (m *MemoryStore) SetRefreshTokenHash(ctx context.Context, accountID string, hash *string, now time.Time) error {
	const op = "identity.SetRefreshTokenHash"

	if err := ctx.Err(); err != nil {
		return err
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[accountID]
	if !ok {
		return NotFoundError{Op: op, Resource: "account"}
	}
	if hash == nil {
		acct.RefreshTokenHash = nil
	} else {
		h := *hash
		acct.RefreshTokenHash = &h
	}
	acct.UpdatedAt = now
	m.accounts[accountID] = acct
	return nil
}

func (m *MemoryStore) SwapRefreshTokenHash(ctx context.Context, accountID, oldHash, newHash string, now time.Time) error {
	const op = "identity.SwapRefreshTokenHash"

	if err := ctx.Err(); err != nil {
		return err
	}
	if oldHash == "" || newHash == "" {
		return pgInvalid(op, "missing token hash")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[accountID]
	if !ok {
		return NotFoundError{Op: op, Resource: "account"}
	}
	if acct.RefreshTokenHash == nil || !ctEq(*acct.RefreshTokenHash, oldHash) {
		return notActiveSwap()
	}
	acct.RefreshTokenHash = &newHash
	acct.UpdatedAt = now
	m.accounts[accountID] = acct
	return nil
}

func (m *MemoryStore) UpdateDetails(ctx context.Context, in UpdateDetailsInput) (Account, error) {
	const op = "identity.UpdateDetails"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	if in.FullName == nil && in.Email == nil {
		return Account{}, pgInvalid(op, "nothing to update")
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[in.AccountID]
	if !ok {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	if in.FullName != nil {
		v := strings.TrimSpace(*in.FullName)
		if v == "" {
			return Account{}, pgInvalid(op, "full name cannot be blank")
		}
		acct.FullName = v
	}
	if in.Email != nil {
		v := strings.TrimSpace(*in.Email)
		if v == "" {
			return Account{}, pgInvalid(op, "email cannot be blank")
		}
		norm := NormalizeEmail(v)
		for id, other := range m.accounts {
			if id != acct.ID && other.EmailNorm == norm {
				return Account{}, ConflictError{Op: op, Field: "email"}
			}
		}
		acct.Email = v
		acct.EmailNorm = norm
	}
	acct.UpdatedAt = now
	m.accounts[acct.ID] = acct
	return acct, nil
}

func (m *MemoryStore) UpdateAvatar(ctx context.Context, accountID, avatarURL, avatarID string, now time.Time) (Account, error) {
	const op = "identity.UpdateAvatar"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return Account{}, pgInvalid(op, "missing avatar url")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[accountID]
	if !ok {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	acct.AvatarURL = avatarURL
	acct.AvatarID = strings.TrimSpace(avatarID)
	acct.UpdatedAt = now
	m.accounts[accountID] = acct
	return acct, nil
}

func (m *MemoryStore) UpdatePasswordHash(ctx context.Context, accountID, passwordHash string, now time.Time) error {
	const op = "identity.UpdatePasswordHash"

	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(passwordHash) == "" {
		return pgInvalid(op, "missing password hash")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[accountID]
	if !ok {
		return NotFoundError{Op: op, Resource: "account"}
	}
	acct.PasswordHash = passwordHash
	acct.UpdatedAt = now
	m.accounts[accountID] = acct
	return nil
}

func (m *MemoryStore) DeleteAccount(ctx context.Context, accountID string) error {
	const op = "identity.DeleteAccount"

	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[accountID]; !ok {
		return NotFoundError{Op: op, Resource: "account"}
	}
	delete(m.accounts, accountID)
	return nil
}

// ctEq compares two stored hashes in constant time.
// Both are expected to be 64-char hex; unequal lengths fail closed.
func ctEq(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
