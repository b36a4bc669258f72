package identity

import (
	"time"

	"github.com/DibuBaj/Backend/cmd/identity/ids"
)

// NewULID mints an account identifier. Thin alias over ids.NewULID so
// store code does not import the subpackage directly.
func NewULID(now time.Time) (string, error) {
	return ids.NewULID(now)
}
