// Package client is the HTTP client of the Findreve API.
//
// # Overview
//
// APIClient exposes one method per remote operation: Login, IsLogin, Logout,
// GetItem, GetItems, AddItems, UpdateItems, DeleteItem, GetAbout and GetObject.
// Each builds one URL, attaches the stored bearer token when the endpoint
// needs it, performs exactly one round trip and normalizes the outcome.
//
// # Result shapes
//
// Most operations return a models.Result envelope. Two do not, on purpose:
// IsLogin reports a bare bool and GetAbout a bare string (the readme text or
// a human-readable error). Callers that need the reason for a failed session
// probe must call another operation.
//
// # Error Handling
//
// Nothing here returns an error or panics to the caller. Non-2xx responses,
// transport failures, body decode failures and a missing token (for endpoints
// that require one) all become a failed Result. Failures are logged at Error
// level with the request id; logging is best-effort.
//
// # Credentials
//
// The token lives in a credstore.Store injected at construction. Login writes
// it only after a 2xx response; Logout clears it. The client adds no locking:
// operations may run concurrently and the store decides what "last write" means.
package client
