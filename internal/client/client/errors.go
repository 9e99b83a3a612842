package client

import "errors"

// Detail strings surfaced in failed results.
const (
	DetailAccessTokenNotFound = "Access token not found"

	loginFailedPrefix   = "login failed"
	requestFailedPrefix = "request failed"
	aboutStatusPrefix   = "unable to load content"
	aboutErrorPrefix    = "loading error"
)

var (
	errAccessTokenNotFound = errors.New(DetailAccessTokenNotFound)
	errNoAccessToken       = errors.New("response carries no access_token")
)

// statusError is a non-2xx response.
type statusError struct {
	prefix     string
	code       int
	statusText string
}

func (e *statusError) Error() string {
	return e.prefix + ": " + e.statusText
}
