// Package session implements RecipeHub's session lifecycle.
//
// It verifies credentials, issues the access/refresh JWT pair, rotates
// refresh tokens with reuse detection, and invalidates sessions on logout.
//
// An account holds at most one live refresh token. The token itself stays
// with the client; the store keeps only its hash (HMAC-SHA256 when
// RECIPEHUB_TOKEN_HMAC_KEY is set; otherwise SHA-256 for dev/back-compat).
//
// Transport (HTTP) integration is intentionally out of scope here.
package session
