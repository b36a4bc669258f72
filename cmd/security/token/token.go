package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
)

// HMACEnvKey names the env var holding the refresh-token storage-hash
// secret.
// #nosec G101 -- the name of an env var, not a credential.
const HMACEnvKey = "RECIPEHUB_TOKEN_HMAC_KEY"

// HashSHA256Hex digests s with plain SHA-256. 64 hex chars.
func HashSHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashHMACSHA256Hex digests s with HMAC-SHA256 under key. 64 hex chars.
func HashHMACSHA256Hex(s string, key []byte) string {
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(s))
	return hex.EncodeToString(m.Sum(nil))
}

// HashRefreshTokenHex produces the digest stored on the account row in
// place of the refresh token itself. With HMACEnvKey set the digest is
// keyed, so a leaked database alone cannot be checked against candidate
// tokens; without it the function falls back to plain SHA-256 for dev.
func HashRefreshTokenHex(token string) string {
	if key := hmacKey(); len(key) > 0 {
		return HashHMACSHA256Hex(token, key)
	}
	return HashSHA256Hex(token)
}

// HMACKeyFromEnv returns the configured HMAC key, enforcing a minimum
// length in raw bytes. Used by the startup security policy.
func HMACKeyFromEnv(minBytes int) ([]byte, error) {
	key := hmacKey()
	if len(key) == 0 {
		return nil, ErrHMACKeyMissing
	}
	if minBytes > 0 && len(key) < minBytes {
		return nil, ErrHMACKeyTooShort
	}
	return key, nil
}

// HMACEnabled reports whether keyed hashing is active. Length is not
// checked here; that is HMACKeyFromEnv's job.
func HMACEnabled() bool { return len(hmacKey()) > 0 }

func hmacKey() []byte {
	raw := strings.TrimSpace(os.Getenv(HMACEnvKey))
	if raw == "" {
		return nil
	}
	return []byte(raw)
}
