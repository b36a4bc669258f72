// Package ids generates the identifiers used across RecipeHub's stores.
package ids

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID mints a 26-character ULID at the given instant. A zero instant
// means "now". ULIDs sort by creation time, which the stores rely on for
// index locality.
func NewULID(now time.Time) (string, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
