package api

import (
	"context"
	"net/http"

	"github.com/DibuBaj/Backend/cmd/identity"
)

type ctxKey int

const accountKey ctxKey = iota

// AccountFrom returns the authenticated profile attached by RequireAuth.
// Only the sanitized view rides the context; handlers needing the stored
// hashes fetch the account row by ID.
func AccountFrom(ctx context.Context) (identity.Profile, bool) {
	acct, ok := ctx.Value(accountKey).(identity.Profile)
	return acct, ok
}

// RequireAuth verifies the access token (cookie first, then bearer header)
// and attaches the resolved profile to the request context. Any failure
// short-circuits with 401 before the wrapped handler runs.
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := accessTokenFrom(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized request")
			return
		}
		acct, err := h.sessions.VerifyAccess(r.Context(), raw)
		if err != nil {
			h.log.Debug("access token rejected", "err", err)
			writeError(w, http.StatusUnauthorized, "unauthorized request")
			return
		}
		ctx := context.WithValue(r.Context(), accountKey, acct)
		next(w, r.WithContext(ctx))
	}
}

// RequirePublisher gates recipe creation on the chef or admin role.
// Must run inside RequireAuth.
func (h *Handler) RequirePublisher(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acct, ok := AccountFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized request")
			return
		}
		if !acct.Role.CanPublish() {
			writeError(w, http.StatusForbidden, "chef or admin role required")
			return
		}
		next(w, r)
	}
}
