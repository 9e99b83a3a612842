package credstore

import (
	"context"
	"errors"
	"time"
)

var ErrUnknownBackend = errors.New("unknown credential store backend")

// Store is the credential persistence seam of the API client.
type Store interface {
	// Get returns the stored token, or "" with a nil error when none is stored.
	Get(ctx context.Context) (string, error)
	// Set replaces the stored token.
	Set(ctx context.Context, token string) error
	// Clear removes the token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Timestamped is implemented by stores that remember when the token was saved.
type Timestamped interface {
	SavedAt(ctx context.Context) (time.Time, bool, error)
}
