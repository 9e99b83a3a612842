// Package common contains shared constants, sentinel errors and small helpers
// used across the Findreve client components.
package common

const (
	// AccessTokenKey is the single well-known key the bearer token lives under.
	// Every credential store backend uses it.
	AccessTokenKey = "access_token"

	// AccessTokenSavedAtKey records when the token was last written.
	AccessTokenSavedAtKey = "access_token_saved_at"

	// RequestIDHeaderName carries the per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
