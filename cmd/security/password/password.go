package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// phcVersion is argon2.Version (0x13). Hashes carrying any other version
// are rejected outright.
const phcVersion = 19

// Hash derives an Argon2id key from password and returns it PHC-encoded:
//
//	$argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt_b64>$<key_b64>
//
// The password must pass the configured policy first.
func (c Config) Hash(password string) (string, error) {
	if err := c.Validate(password); err != nil {
		return "", err
	}

	salt := make([]byte, c.Params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		c.Params.Iterations,
		c.Params.MemoryKiB,
		c.Params.Parallelism,
		c.Params.KeyLength,
	)

	return encodePHC(c.Params, salt, key), nil
}

// Verify reports whether password matches encodedHash. A mismatch is
// (false, nil); only a malformed or out-of-bounds hash is an error
// (ErrInvalidHash).
func (c Config) Verify(encodedHash, password string) (bool, error) {
	params, salt, want, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	// A stored hash dictates the verification cost, so an attacker who can
	// inject hash strings could otherwise pick pathological parameters.
	// Refuse anything far above the configured ceiling.
	if !paramsWithinLimits(params, c.Params) {
		return false, ErrInvalidHash
	}

	got := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.MemoryKiB,
		params.Parallelism,
		uint32(len(want)), // #nosec G115 -- length bounded by parsePHC.
	)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func encodePHC(p Argon2idParams, salt, key []byte) string {
	b64 := base64.RawStdEncoding
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		phcVersion,
		p.MemoryKiB,
		p.Iterations,
		p.Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	)
}

// paramsWithinLimits accepts hashes minted with smaller (older) settings but
// rejects anything well above the configured cost.
func paramsWithinLimits(got, limit Argon2idParams) bool {
	switch {
	case got.MemoryKiB > limit.MemoryKiB*2,
		got.Iterations > limit.Iterations*2,
		got.Parallelism > limit.Parallelism*2,
		got.SaltLength < 8, got.SaltLength > 64,
		got.KeyLength < 16, got.KeyLength > 128:
		return false
	}
	return true
}

// parsePHC splits and validates a PHC-encoded Argon2id hash.
func parsePHC(encoded string) (Argon2idParams, []byte, []byte, error) {
	fail := func() (Argon2idParams, []byte, []byte, error) {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return fail()
	}
	if parts[2] != fmt.Sprintf("v=%d", phcVersion) {
		return fail()
	}

	var mem, it, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &it, &par); err != nil {
		return fail()
	}
	if mem == 0 || it == 0 || par == 0 || par > 255 {
		return fail()
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return fail()
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return fail()
	}

	return Argon2idParams{
		MemoryKiB:   mem,
		Iterations:  it,
		Parallelism: uint8(par),        // bounded above
		SaltLength:  uint32(len(salt)), // #nosec G115 -- bounded by paramsWithinLimits.
		KeyLength:   uint32(len(key)),  // #nosec G115 -- bounded by paramsWithinLimits.
	}, salt, key, nil
}
