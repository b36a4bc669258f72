package identity

import (
	"context"
	"testing"
	"time"

	"github.com/DibuBaj/Backend/cmd/security/token"
)

// Cheap argon2 parameters keep the in-memory store tests fast.
func fastArgon(t *testing.T) {
	t.Helper()
	t.Setenv("RECIPEHUB_ARGON2_MEMORY_KIB", "8192")
	t.Setenv("RECIPEHUB_ARGON2_ITERATIONS", "1")
}

func seedAccount(t *testing.T, m *MemoryStore, username, email string) Account {
	t.Helper()
	acct, err := m.CreateAccount(context.Background(), CreateAccountInput{
		Username: username,
		Email:    email,
		FullName: "Test " + username,
		Password: "sufficiently-long-pw",
		Now:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return acct
}

func TestMemoryStore_CreateAndLookup(t *testing.T) {
	fastArgon(t)
	m := NewMemoryStore()
	ctx := context.Background()

	acct := seedAccount(t, m, "Dana", "Dana@Example.com")
	if acct.UsernameNorm != "dana" || acct.EmailNorm != "dana@example.com" {
		t.Fatalf("normalization missing: %+v", acct)
	}
	if acct.Role != RoleRegular {
		t.Fatalf("default role = %q, want regular", acct.Role)
	}
	if acct.PasswordHash == "" || acct.PasswordHash == "sufficiently-long-pw" {
		t.Fatal("password not hashed")
	}

	byUser, err := m.AccountByIdentifier(ctx, "DANA")
	if err != nil || byUser.ID != acct.ID {
		t.Fatalf("lookup by username: %v", err)
	}
	byEmail, err := m.AccountByIdentifier(ctx, "dana@example.COM")
	if err != nil || byEmail.ID != acct.ID {
		t.Fatalf("lookup by email: %v", err)
	}
	if _, err := m.AccountByIdentifier(ctx, "ghost"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_DuplicateConflicts(t *testing.T) {
	fastArgon(t)
	m := NewMemoryStore()
	ctx := context.Background()
	seedAccount(t, m, "chef-a", "a@example.com")

	_, err := m.CreateAccount(ctx, CreateAccountInput{
		Username: "CHEF-A",
		Email:    "fresh@example.com",
		FullName: "Dup Username",
		Password: "sufficiently-long-pw",
	})
	if !IsConflict(err) {
		t.Fatalf("dup username: err = %v, want conflict", err)
	}

	_, err = m.CreateAccount(ctx, CreateAccountInput{
		Username: "chef-b",
		Email:    "A@Example.com",
		FullName: "Dup Email",
		Password: "sufficiently-long-pw",
	})
	if !IsConflict(err) {
		t.Fatalf("dup email: err = %v, want conflict", err)
	}
}

func TestMemoryStore_RefreshHashLifecycle(t *testing.T) {
	fastArgon(t)
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()
	acct := seedAccount(t, m, "rotator", "rot@example.com")

	h1 := token.HashRefreshTokenHex("tok-1")
	h2 := token.HashRefreshTokenHex("tok-2")
	h3 := token.HashRefreshTokenHex("tok-3")

	// No hash yet: swap must fail closed.
	if err := m.SwapRefreshTokenHash(ctx, acct.ID, h1, h2, now); !IsNotActive(err) {
		t.Fatalf("swap on empty hash: err = %v, want not-active", err)
	}

	if err := m.SetRefreshTokenHash(ctx, acct.ID, &h1, now); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.SwapRefreshTokenHash(ctx, acct.ID, h1, h2, now); err != nil {
		t.Fatalf("swap h1->h2: %v", err)
	}
	// Replay of h1 loses.
	if err := m.SwapRefreshTokenHash(ctx, acct.ID, h1, h3, now); !IsNotActive(err) {
		t.Fatalf("stale swap: err = %v, want not-active", err)
	}

	// Clearing twice is idempotent.
	if err := m.SetRefreshTokenHash(ctx, acct.ID, nil, now); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := m.SetRefreshTokenHash(ctx, acct.ID, nil, now); err != nil {
		t.Fatalf("second clear: %v", err)
	}

	if err := m.SwapRefreshTokenHash(ctx, "01HXXXXXXXXXXXXXXXXXXXXXXX", h1, h2, now); !IsNotFound(err) {
		t.Fatalf("unknown account: err = %v, want not found", err)
	}
}

func TestMemoryStore_UpdateAndDelete(t *testing.T) {
	fastArgon(t)
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()
	acct := seedAccount(t, m, "mutable", "mut@example.com")
	other := seedAccount(t, m, "other", "taken@example.com")

	name := "Renamed"
	upd, err := m.UpdateDetails(ctx, UpdateDetailsInput{AccountID: acct.ID, FullName: &name, Now: now})
	if err != nil || upd.FullName != "Renamed" {
		t.Fatalf("rename: %v (%+v)", err, upd)
	}

	taken := "Taken@Example.com"
	if _, err := m.UpdateDetails(ctx, UpdateDetailsInput{AccountID: acct.ID, Email: &taken, Now: now}); !IsConflict(err) {
		t.Fatalf("email collision: err = %v, want conflict", err)
	}

	if _, err := m.UpdateAvatar(ctx, acct.ID, "https://img.example.com/x.png", "images/x.png", now); err != nil {
		t.Fatalf("avatar: %v", err)
	}

	if err := m.DeleteAccount(ctx, acct.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := m.DeleteAccount(ctx, acct.ID); !IsNotFound(err) {
		t.Fatalf("second delete: err = %v, want not found", err)
	}
	if _, err := m.AccountByID(ctx, other.ID); err != nil {
		t.Fatalf("unrelated account lost: %v", err)
	}
}

func TestSanitizedStripsCredentials(t *testing.T) {
	h := "deadbeef"
	acct := Account{
		ID:               "01A",
		Username:         "safe",
		Email:            "s@example.com",
		FullName:         "Safe Person",
		Role:             RoleChef,
		PasswordHash:     "$argon2id$...",
		RefreshTokenHash: &h,
	}
	p := acct.Sanitized()
	if p.Username != "safe" || p.Role != RoleChef {
		t.Fatalf("profile lost fields: %+v", p)
	}
	// The profile type has no credential fields at all; this test documents
	// that handlers must use it for outward writes.
}
