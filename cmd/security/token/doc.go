// Package token provides the signed-token primitives for RecipeHub.
//
// It owns two concerns:
//   - Minting and verifying the JWT pair (short-lived access, long-lived
//     refresh), each signed under its own secret so one context can never
//     validate the other's tokens.
//   - Hashing refresh tokens for server-side storage. The raw refresh
//     token never touches the database; only its digest does.
//
// Design goals:
// - Default dev/back-compat mode: SHA-256(token) when no HMAC key is configured.
// - Production-enforced mode: HMAC-SHA256(token, key) when policy requires it.
// - Stable 64-char hex output for storage and constant-time comparison.
//
// Environment:
// - RECIPEHUB_TOKEN_HMAC_KEY: when set, enables HMAC mode for storage hashing.
package token
