package token

import "errors"

// Public, stable errors for callers.
var (
	ErrHMACKeyMissing  = errors.New("token HMAC key missing")
	ErrHMACKeyTooShort = errors.New("token HMAC key too short")

	// ErrTokenInvalid covers every verification failure that is not a pure
	// expiry: bad signature, malformed token, wrong signing context.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)
