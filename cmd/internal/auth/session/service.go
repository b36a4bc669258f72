package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity"
	"github.com/DibuBaj/Backend/cmd/security/token"
)

// Service implements the high-level session operations for RecipeHub.
//
// It verifies credentials, issues the access/refresh token pair, rotates
// refresh tokens with single-use semantics, and revokes sessions on logout.
type Service struct {
	cfg      Config
	accounts identity.Store
	signer   *token.Signer
	log      *slog.Logger

	// dummyHash is verified against on account-miss so that a failed login
	// costs the same whether or not the account exists.
	dummyHash string
}

// Issued is the result of a login or a refresh rotation.
type Issued struct {
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
	RefreshExp   time.Time
}

// NewService constructs a Service and precomputes the timing-equalization hash.
func NewService(cfg Config, accounts identity.Store, signer *token.Signer, log *slog.Logger) (*Service, error) {
	if accounts == nil || signer == nil {
		return nil, ErrConfig
	}
	if log == nil {
		log = slog.Default()
	}

	// Random throwaway password; its hash only exists to burn argon2 time.
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	dummy, err := identity.HashPassword("decoy-" + base64.RawURLEncoding.EncodeToString(buf))
	if err != nil {
		return nil, fmt.Errorf("session: precompute dummy hash: %w", err)
	}

	return &Service{
		cfg:       cfg,
		accounts:  accounts,
		signer:    signer,
		log:       log,
		dummyHash: dummy,
	}, nil
}

// Login verifies credentials and starts a fresh session.
//
// The identifier may be a username or an email address. Every failure path
// returns ErrBadCredentials; account-miss performs a decoy password verify so
// the caller cannot distinguish it from a mismatch by timing.
//
// On success the refresh-token hash is written unconditionally, which is the
// invalidation point for any session the account had before.
func (s *Service) Login(ctx context.Context, now time.Time, identifier, password string) (identity.Account, Issued, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return identity.Account{}, Issued{}, ErrBadCredentials
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	acct, err := s.accounts.AccountByIdentifier(ctx, identifier)
	if err != nil {
		if identity.IsNotFound(err) || identity.IsInvalidInput(err) {
			// Equalize cost with the found-account path.
			_, _ = identity.VerifyPassword(password, s.dummyHash)
			return identity.Account{}, Issued{}, ErrBadCredentials
		}
		return identity.Account{}, Issued{}, err
	}

	ok, err := identity.VerifyPassword(password, acct.PasswordHash)
	if err != nil {
		s.log.Error("password verify failed", "err", err)
		return identity.Account{}, Issued{}, err
	}
	if !ok {
		return identity.Account{}, Issued{}, ErrBadCredentials
	}

	issued, refreshHash, err := s.issuePair(acct, now)
	if err != nil {
		return identity.Account{}, Issued{}, err
	}

	if err := s.accounts.SetRefreshTokenHash(ctx, acct.ID, &refreshHash, now); err != nil {
		if identity.IsNotFound(err) {
			return identity.Account{}, Issued{}, ErrBadCredentials
		}
		return identity.Account{}, Issued{}, err
	}

	s.log.Info("session issued", "account_id", acct.ID)
	return acct, issued, nil
}

// VerifyAccess validates an access token and resolves its subject to the
// sanitized profile. Credential fields never leave this method; callers
// that need the password hash fetch the account row themselves.
//
// Any failure collapses to ErrUnauthorized outward; the underlying cause is
// carried in the wrap for logging only.
func (s *Service) VerifyAccess(ctx context.Context, raw string) (identity.Profile, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return identity.Profile{}, ErrUnauthorized
	}

	claims, err := s.signer.VerifyAccess(raw)
	if err != nil {
		return identity.Profile{}, fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}

	acct, err := s.accounts.AccountByID(ctx, claims.Subject)
	if err != nil {
		if identity.IsNotFound(err) {
			return identity.Profile{}, fmt.Errorf("%w: stale subject", ErrUnauthorized)
		}
		return identity.Profile{}, err
	}
	return acct.Sanitized(), nil
}

// Refresh rotates a refresh token for a new token pair.
//
// Rotation rules:
//   - The presented token must verify in the refresh signing context.
//   - Its hash must still be the one stored on the account. The conditional
//     store swap guarantees exactly one winner under concurrent refreshes;
//     losers (including replays of rotated tokens) get ErrUnauthorized.
//   - Signing happens before the store write, so a signing failure leaves
//     the stored hash untouched.
func (s *Service) Refresh(ctx context.Context, now time.Time, raw string) (identity.Account, Issued, error) {
	raw = strings.TrimSpace(raw)
	// Basic sanity bounds to avoid pathological inputs.
	if raw == "" || len(raw) > 4096 {
		return identity.Account{}, Issued{}, ErrUnauthorized
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	accountID, err := s.signer.VerifyRefresh(raw)
	if err != nil {
		return identity.Account{}, Issued{}, fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}

	acct, err := s.accounts.AccountByID(ctx, accountID)
	if err != nil {
		if identity.IsNotFound(err) {
			return identity.Account{}, Issued{}, fmt.Errorf("%w: stale subject", ErrUnauthorized)
		}
		return identity.Account{}, Issued{}, err
	}

	issued, newHash, err := s.issuePair(acct, now)
	if err != nil {
		return identity.Account{}, Issued{}, err
	}

	presentedHash := token.HashRefreshTokenHex(raw)
	err = s.accounts.SwapRefreshTokenHash(ctx, acct.ID, presentedHash, newHash, now)
	if err != nil {
		if identity.IsNotActive(err) || identity.IsNotFound(err) {
			s.log.Warn("refresh token rejected", "account_id", acct.ID)
			return identity.Account{}, Issued{}, fmt.Errorf("%w: refresh token no longer current", ErrUnauthorized)
		}
		return identity.Account{}, Issued{}, err
	}

	return acct, issued, nil
}

// Logout clears the account's stored refresh-token hash. Idempotent: logging
// out twice is not an error. Outstanding access tokens keep working until
// they expire.
func (s *Service) Logout(ctx context.Context, now time.Time, accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return ErrUnauthorized
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	err := s.accounts.SetRefreshTokenHash(ctx, accountID, nil, now)
	if err != nil {
		if identity.IsNotFound(err) {
			return ErrUnauthorized
		}
		return err
	}
	s.log.Info("session revoked", "account_id", accountID)
	return nil
}

// issuePair mints both tokens at the caller's instant and returns the
// refresh token's storage hash. Token iat/exp and the store writes share
// one clock.
func (s *Service) issuePair(acct identity.Account, now time.Time) (Issued, string, error) {
	access, accessExp, err := s.signer.SignAccess(acct.ID, acct.Username, acct.Email, string(acct.Role), now)
	if err != nil {
		return Issued{}, "", err
	}
	refresh, refreshExp, err := s.signer.SignRefresh(acct.ID, now)
	if err != nil {
		return Issued{}, "", err
	}

	return Issued{
		AccessToken:  access,
		AccessExp:    accessExp,
		RefreshToken: refresh,
		RefreshExp:   refreshExp,
	}, token.HashRefreshTokenHex(refresh), nil
}
