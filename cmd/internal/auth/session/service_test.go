package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity"
	"github.com/DibuBaj/Backend/cmd/security/token"
)

func testService(t *testing.T) (*Service, *identity.MemoryStore) {
	t.Helper()
	t.Setenv("RECIPEHUB_ARGON2_MEMORY_KIB", "8192")
	t.Setenv("RECIPEHUB_ARGON2_ITERATIONS", "1")

	signer, err := token.NewSigner(token.SignerConfig{
		AccessSecret:  []byte("service-test-access-secret-000001"),
		RefreshSecret: []byte("service-test-refresh-secret-00001"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "recipehub-test",
	})
	if err != nil {
		t.Fatalf("signer: %v", err)
	}

	store := identity.NewMemoryStore()
	svc, err := NewService(DefaultConfig(), store, signer, nil)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc, store
}

func register(t *testing.T, store *identity.MemoryStore, username, email, pw string) identity.Account {
	t.Helper()
	acct, err := store.CreateAccount(context.Background(), identity.CreateAccountInput{
		Username: username,
		Email:    email,
		FullName: "Test " + username,
		Password: pw,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return acct
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	svc, store := testService(t)
	register(t, store, "alice", "a@x.com", "password-one")
	ctx := context.Background()
	now := time.Now().UTC()

	for _, ident := range []string{"alice", "ALICE", "a@x.com", "A@X.COM"} {
		acct, issued, err := svc.Login(ctx, now, ident, "password-one")
		if err != nil {
			t.Fatalf("login %q: %v", ident, err)
		}
		if acct.Username != "alice" {
			t.Errorf("login %q resolved %q", ident, acct.Username)
		}
		if issued.AccessToken == "" || issued.RefreshToken == "" {
			t.Fatalf("login %q returned empty tokens", ident)
		}
	}
}

func TestLoginIssuesAtCallerClock(t *testing.T) {
	svc, store := testService(t)
	register(t, store, "erin", "e@x.com", "password-nine")
	ctx := context.Background()

	// Truncated because JWT timestamps carry whole seconds.
	now := time.Now().UTC().Truncate(time.Second).Add(-30 * time.Second)
	_, issued, err := svc.Login(ctx, now, "erin", "password-nine")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if want := now.Add(15 * time.Minute); !issued.AccessExp.Equal(want) {
		t.Errorf("access exp = %v, want %v", issued.AccessExp, want)
	}
	if want := now.Add(7 * 24 * time.Hour); !issued.RefreshExp.Equal(want) {
		t.Errorf("refresh exp = %v, want %v", issued.RefreshExp, want)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, store := testService(t)
	register(t, store, "bob", "b@x.com", "correct-horse-1")
	ctx := context.Background()
	now := time.Now().UTC()

	cases := []struct {
		name       string
		identifier string
		password   string
	}{
		{"wrong password", "bob", "battery-staple-2"},
		{"unknown account", "nobody", "battery-staple-2"},
		{"empty identifier", "", "battery-staple-2"},
		{"empty password", "bob", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, now, tc.identifier, tc.password)
			if !errors.Is(err, ErrBadCredentials) {
				t.Fatalf("err = %v, want ErrBadCredentials", err)
			}
		})
	}
}

func TestLoginSupersedesPriorSession(t *testing.T) {
	svc, store := testService(t)
	register(t, store, "carol", "c@x.com", "password-three")
	ctx := context.Background()
	now := time.Now().UTC()

	_, first, err := svc.Login(ctx, now, "carol", "password-three")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	_, _, err = svc.Login(ctx, now, "carol", "password-three")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	// The first session's refresh token was overwritten at the second login.
	if _, _, err := svc.Refresh(ctx, now, first.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("refresh with superseded token: err = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyAccess(t *testing.T) {
	svc, store := testService(t)
	seeded := register(t, store, "dave", "d@x.com", "password-four")
	ctx := context.Background()
	now := time.Now().UTC()

	_, issued, err := svc.Login(ctx, now, "dave", "password-four")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	acct, err := svc.VerifyAccess(ctx, issued.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if acct.ID != seeded.ID {
		t.Errorf("subject = %q, want %q", acct.ID, seeded.ID)
	}
	// Only the sanitized projection comes back, never the stored hashes.
	if acct != seeded.Sanitized() {
		t.Errorf("verify returned %+v, want sanitized %+v", acct, seeded.Sanitized())
	}

	if _, err := svc.VerifyAccess(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("empty token: err = %v", err)
	}
	if _, err := svc.VerifyAccess(ctx, "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("garbage token: err = %v", err)
	}
	// A refresh token must not pass the access check.
	if _, err := svc.VerifyAccess(ctx, issued.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("refresh token as access: err = %v", err)
	}

	// Deleted subject no longer resolves.
	if err := store.DeleteAccount(ctx, seeded.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.VerifyAccess(ctx, issued.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("stale subject: err = %v", err)
	}
}

func TestRefreshRotationLifecycle(t *testing.T) {
	svc, store := testService(t)
	seeded := register(t, store, "alice2", "a2@x.com", "password-P1")
	ctx := context.Background()
	now := time.Now().UTC()

	_, first, err := svc.Login(ctx, now, "alice2", "password-P1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if first.AccessToken == "" || first.RefreshToken == "" {
		t.Fatal("login returned empty tokens")
	}

	acct, second, err := svc.Refresh(ctx, now, first.RefreshToken)
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if acct.ID != seeded.ID {
		t.Errorf("refresh subject = %q", acct.ID)
	}
	if second.RefreshToken == first.RefreshToken || second.AccessToken == first.AccessToken {
		t.Fatal("rotation produced identical tokens")
	}

	// Replay of the consumed token is rejected.
	if _, _, err := svc.Refresh(ctx, now, first.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("replay: err = %v, want ErrUnauthorized", err)
	}

	// Logout, then even the current token is dead.
	if err := svc.Logout(ctx, now, seeded.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.Logout(ctx, now, seeded.ID); err != nil {
		t.Fatalf("second logout should be idempotent: %v", err)
	}
	if _, _, err := svc.Refresh(ctx, now, second.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("refresh after logout: err = %v, want ErrUnauthorized", err)
	}

	// Access tokens are unaffected by logout until they expire.
	if _, err := svc.VerifyAccess(ctx, second.AccessToken); err != nil {
		t.Fatalf("access after logout: %v", err)
	}
}

func TestRefreshRejectsForeignAndEmptyTokens(t *testing.T) {
	svc, store := testService(t)
	register(t, store, "erin", "e@x.com", "password-five")
	ctx := context.Background()
	now := time.Now().UTC()

	_, issued, err := svc.Login(ctx, now, "erin", "password-five")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	for name, tok := range map[string]string{
		"empty":        "",
		"garbage":      "nope.nope.nope",
		"access token": issued.AccessToken,
	} {
		if _, _, err := svc.Refresh(ctx, now, tok); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s: err = %v, want ErrUnauthorized", name, err)
		}
	}
}

func TestConcurrentRefreshHasOneWinner(t *testing.T) {
	svc, store := testService(t)
	register(t, store, "frank", "f@x.com", "password-six")
	ctx := context.Background()
	now := time.Now().UTC()

	_, issued, err := svc.Login(ctx, now, "frank", "password-six")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Refresh(ctx, now, issued.RefreshToken)
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("unexpected refresh error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("winners = %d, want exactly 1", wins)
	}
}
