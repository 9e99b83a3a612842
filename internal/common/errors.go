package common

import "errors"

// ErrInvalidToken reports a malformed, undecodable or unverifiable bearer
// token. Match it with errors.Is.
var ErrInvalidToken = errors.New("invalid token")
