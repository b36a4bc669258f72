package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignerConfig carries the two signing secrets and lifetimes.
// The secrets MUST differ; a token minted in one context must never
// verify in the other.
type SignerConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// AccessClaims is the payload of a short-lived access token.
// It carries enough identity to serve authenticated requests without a
// store lookup.
type AccessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// RefreshClaims is the payload of a long-lived refresh token. Subject only;
// everything else is re-read from the store at rotation time.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// Signer mints and verifies the JWT pair. Access and refresh are separate
// signing contexts with independent secrets.
type Signer struct {
	cfg SignerConfig
	now func() time.Time
}

// NewSigner validates cfg and returns a ready Signer.
func NewSigner(cfg SignerConfig) (*Signer, error) {
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("token: access secret is empty")
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("token: refresh secret is empty")
	}
	if string(cfg.AccessSecret) == string(cfg.RefreshSecret) {
		return nil, errors.New("token: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token: token lifetimes must be positive")
	}
	if cfg.AccessTTL >= cfg.RefreshTTL {
		return nil, errors.New("token: access lifetime must be shorter than refresh lifetime")
	}
	return &Signer{cfg: cfg, now: time.Now}, nil
}

// AccessTTL reports the configured access-token lifetime.
func (s *Signer) AccessTTL() time.Duration { return s.cfg.AccessTTL }

// RefreshTTL reports the configured refresh-token lifetime.
func (s *Signer) RefreshTTL() time.Duration { return s.cfg.RefreshTTL }

func (s *Signer) issuedAt(at time.Time) time.Time {
	if at.IsZero() {
		at = s.now()
	}
	return at.UTC()
}

// SignAccess mints an access token for the given account identity, issued
// at the given instant (zero means the signer's clock). Returns the compact
// token and its expiry.
func (s *Signer) SignAccess(accountID, username, email, role string, at time.Time) (string, time.Time, error) {
	jti, err := newJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := s.issuedAt(at)
	exp := now.Add(s.cfg.AccessTTL)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   accountID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Username: username,
		Email:    email,
		Role:     role,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.AccessSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return raw, exp, nil
}

// SignRefresh mints a refresh token carrying only the account id, issued at
// the given instant (zero means the signer's clock). The jti makes
// back-to-back tokens distinct even within one clock second, which rotation
// depends on.
func (s *Signer) SignRefresh(accountID string, at time.Time) (string, time.Time, error) {
	jti, err := newJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := s.issuedAt(at)
	exp := now.Add(s.cfg.RefreshTTL)
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   accountID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.RefreshSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return raw, exp, nil
}

// VerifyAccess checks raw against the access context.
// Expired-but-otherwise-valid tokens return ErrTokenExpired; every other
// failure returns ErrTokenInvalid.
func (s *Signer) VerifyAccess(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.verify(raw, claims, s.cfg.AccessSecret); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// VerifyRefresh checks raw against the refresh context and returns the
// subject account id.
func (s *Signer) VerifyRefresh(raw string) (string, error) {
	claims := &RefreshClaims{}
	if err := s.verify(raw, claims, s.cfg.RefreshSecret); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

func newJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *Signer) verify(raw string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}
