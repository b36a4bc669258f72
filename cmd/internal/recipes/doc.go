// Package recipes holds the recipe domain: the model, its stores, and the
// ownership rules for mutation.
//
// Ownership failures are reported as not-found on purpose; a caller probing
// someone else's recipe learns nothing beyond "no such recipe for you".
package recipes
