package password

import (
	"errors"
	"strings"
	"testing"
)

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.Params.MemoryKiB = 8 * 1024
	cfg.Params.Iterations = 1
	return cfg
}

func TestHashRoundTrip(t *testing.T) {
	cfg := fastConfig()

	h, err := cfg.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(h, "$argon2id$v=19$") {
		t.Fatalf("unexpected encoding: %q", h)
	}

	ok, err := cfg.Verify(h, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("matching password must verify")
	}

	ok, err = cfg.Verify(h, "incorrect horse")
	if err != nil {
		t.Fatalf("Verify mismatch: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashesAreSalted(t *testing.T) {
	cfg := fastConfig()

	a, err := cfg.Hash("same password either time")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := cfg.Hash("same password either time")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of one password must differ")
	}
}

func TestValidateLengthBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.MinLength = 12
	cfg.Policy.MaxLength = 16

	cases := []struct {
		pw   string
		want error
	}{
		{"short", ErrPasswordTooShort},
		{"this password is definitely too long", ErrPasswordTooLong},
		{"goodpassw0rd!", nil},
	}
	for _, tc := range cases {
		if err := cfg.Validate(tc.pw); !errors.Is(err, tc.want) {
			t.Errorf("Validate(%q) = %v, want %v", tc.pw, err, tc.want)
		}
	}
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	cfg := fastConfig()

	for _, bad := range []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=3,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=1$!!!$aGFzaA",
	} {
		ok, err := cfg.Verify(bad, "whatever")
		if !errors.Is(err, ErrInvalidHash) {
			t.Errorf("Verify(%q): err = %v, want ErrInvalidHash", bad, err)
		}
		if ok {
			t.Errorf("Verify(%q) reported a match", bad)
		}
	}
}

func TestVerifyRejectsOversizedParams(t *testing.T) {
	// A hash minted at high cost must not be verifiable under a small limit.
	big := DefaultConfig()
	big.Params.MemoryKiB = 64 * 1024
	big.Params.Iterations = 1
	h, err := big.Hash("some acceptable password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	small := DefaultConfig()
	small.Params.MemoryKiB = 8 * 1024
	if _, err := small.Verify(h, "some acceptable password"); !errors.Is(err, ErrInvalidHash) {
		t.Fatalf("oversized params: err = %v, want ErrInvalidHash", err)
	}
}

func TestRejectVeryWeak(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.RejectVeryWeak = true
	cfg.Policy.MinLength = 8

	for _, weak := range []string{"password", "11111111", "aaaaaaaaaa", "12345678"} {
		if err := cfg.Validate(weak); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Validate(%q) = %v, want ErrWeakPassword", weak, err)
		}
	}
	if err := cfg.Validate("a-very-ok-pass"); err != nil {
		t.Errorf("acceptable password rejected: %v", err)
	}
}
