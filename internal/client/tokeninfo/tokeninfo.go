// Package tokeninfo reads display details out of a bearer token.
//
// The token is parsed without verifying its signature: the client has no key,
// and nothing here decides whether a request is sent. The server stays the
// only judge of validity.
package tokeninfo

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/findreve/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Info is what the CLI shows for the current session.
type Info struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	// SavedAt is when the credential store last wrote the token. Zero when
	// the store does not record it.
	SavedAt time.Time
}

// Describe extracts sub/iat/exp from a JWT. Opaque (non-JWT) tokens yield
// common.ErrInvalidToken.
func Describe(token string) (Info, error) {
	claims := &jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	info := Info{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
