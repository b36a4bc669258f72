package app

import (
	"errors"
	"fmt"

	"github.com/DibuBaj/Backend/cmd/security/token"
)

// ValidateSecurityConfig fail-fasts at startup when the deployment asks
// for HMAC refresh-token hashing but the runtime cannot actually do it.
// The check goes through the same security/token package that performs
// the hashing, so config and behavior cannot drift apart.
func ValidateSecurityConfig(cfg Config) error {
	if !cfg.RequireTokenHMAC {
		return nil
	}

	// 32 raw bytes minimum for an HMAC-SHA256 key.
	if _, err := token.HMACKeyFromEnv(32); err != nil {
		switch {
		case errors.Is(err, token.ErrHMACKeyMissing):
			return policyError("%s is missing", token.HMACEnvKey)
		case errors.Is(err, token.ErrHMACKeyTooShort):
			return policyError("%s is too short (min 32 bytes)", token.HMACEnvKey)
		default:
			return err
		}
	}

	if !token.HMACEnabled() {
		return policyError("token hasher is not in HMAC mode")
	}

	return nil
}

func policyError(format string, args ...any) error {
	return fmt.Errorf("security policy: RECIPEHUB_REQUIRE_TOKEN_HMAC=true but "+format, args...)
}
