package password

import "errors"

// Sentinel errors. Policy violations come out of Hash; ErrInvalidHash comes
// out of Verify for malformed or out-of-bounds PHC strings.
var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrWeakPassword     = errors.New("weak password")

	ErrInvalidHash = errors.New("invalid password hash")
)
