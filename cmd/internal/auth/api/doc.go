// Package api binds the RecipeHub domain services to HTTP.
//
// It owns the /api/v1 route surface, the response envelope, the session
// cookies, and the auth middleware. Handlers stay thin: decode, call the
// service or store, map the error kind to a status code. Domain rules live
// in the packages underneath.
package api
