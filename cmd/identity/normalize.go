package identity

import "strings"

// NormalizeUsername canonicalizes a username for uniqueness checks and
// lookups: trimmed, lower-cased. Display casing is kept on the account.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail canonicalizes an email address the same way. Plus-address
// folding is deliberately not done; "a+b@x" and "a@x" stay distinct.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
