// Package password hashes and verifies account passwords with Argon2id,
// encoded as PHC strings ($argon2id$v=19$m=..,t=..,p=..$salt$key).
//
// Cost parameters come from the environment (RECIPEHUB_ARGON2_*). Verify
// treats the stored hash as untrusted input: it rejects malformed strings
// and any hash whose declared parameters exceed the configured cost by
// more than paramsWithinLimits allows, so a poisoned row cannot turn a
// login into a memory bomb.
//
// Basic password policy (length bounds, trivial-password rejection) also
// lives here so Hash and Validate share one Config.
package password
