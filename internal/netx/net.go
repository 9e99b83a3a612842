// Package netx holds HTTP helpers shared by the API client: component
// escaping, an insertion-ordered query builder, and status inspection.
package netx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// componentFixup turns url.QueryEscape output into the browser's
// encodeURIComponent form: '+' for space becomes %20 and the sub-delims
// ! ' ( ) * stay literal.
var componentFixup = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent escapes s for use as a single path segment or query value,
// matching encodeURIComponent byte for byte.
func EncodeComponent(s string) string {
	return componentFixup.Replace(url.QueryEscape(s))
}

// Query builds a query string that keeps parameters in insertion order.
// url.Values sorts keys on Encode, which reorders what the server logs.
type Query struct {
	keys   []string
	values []string
}

// Add appends key=value. Both parts are escaped on Encode.
func (q *Query) Add(key, value string) *Query {
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
	return q
}

// Len reports the number of parameters added so far.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// Encode renders "k1=v1&k2=v2" without a leading '?'.
func (q *Query) Encode() string {
	if q.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EncodeComponent(k))
		b.WriteByte('=')
		b.WriteString(EncodeComponent(q.values[i]))
	}
	return b.String()
}

// IsSuccess reports whether code is in [200, 300).
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// StatusText returns the reason phrase of resp ("Not Found" for "404 Not Found").
// Servers may send a custom phrase; when none is present the standard text
// for the code is used.
func StatusText(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
