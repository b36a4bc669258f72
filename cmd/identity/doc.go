// Package identity holds RecipeHub's account foundation: the canonical
// account model, username/email normalization, the module-wide error
// taxonomy, and the store interfaces the HTTP layer talks to.
//
// Hashing and token primitives live under cmd/security; this package
// stays dependency-light on purpose.
package identity
