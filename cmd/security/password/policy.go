package password

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validate applies the configured password policy. Length is measured in
// runes, not bytes.
func (c Config) Validate(password string) error {
	n := utf8.RuneCountInString(password)
	if n < c.Policy.MinLength {
		return ErrPasswordTooShort
	}
	if n > c.Policy.MaxLength {
		return ErrPasswordTooLong
	}
	if c.Policy.RejectVeryWeak && isTrivial(password) {
		return ErrWeakPassword
	}
	return nil
}

// trivialPasswords is the short deny-list applied by RejectVeryWeak.
// This is deliberately not a strength estimator.
var trivialPasswords = map[string]struct{}{
	"password":    {},
	"password123": {},
	"123456":      {},
	"123456789":   {},
	"qwerty":      {},
	"qwerty123":   {},
	"11111111":    {},
}

func isTrivial(pw string) bool {
	s := strings.TrimSpace(pw)
	if s == "" {
		return true
	}

	if _, known := trivialPasswords[strings.ToLower(s)]; known {
		return true
	}

	runes := []rune(s)

	// A single repeated character, at any length.
	same := true
	for _, r := range runes[1:] {
		if r != runes[0] {
			same = false
			break
		}
	}
	if same {
		return true
	}

	// Short all-digit strings are PIN-grade.
	digits := true
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			digits = false
			break
		}
	}
	return digits && len(runes) < 12
}
