package session

import "errors"

var (
	// ErrBadCredentials is returned for every login failure, whether the
	// account is missing or the password mismatched. Callers must not be
	// able to tell the two apart.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrUnauthorized is returned when a token is missing, invalid, expired,
	// superseded by rotation, or its subject no longer resolves.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
