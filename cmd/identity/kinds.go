package identity

import "errors"

// Error kinds shared by every store in the module. The transport layer maps
// them to status codes; errors.Is against these is the only contract.
//
// ErrNotActive is the rotation-specific kind: the account exists but the
// presented refresh-token hash is no longer the stored one.
var (
	ErrInvalidInput = errors.New("invalid_input")
	ErrNotFound     = errors.New("not_found")
	ErrConflict     = errors.New("conflict")
	ErrNotActive    = errors.New("not_active")
)
