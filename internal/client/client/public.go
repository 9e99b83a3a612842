package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/findreve/internal/client/models"
	"github.com/dmitrijs2005/findreve/internal/netx"
)

// AboutPath is where the server publishes its readme.
const AboutPath = "/static/readme.md"

// GetAbout fetches the readme text, bypassing caches. On failure it returns
// a human-readable message instead of the text.
func (c *APIClient) GetAbout(ctx context.Context) string {
	text, err := c.FetchAbout(ctx)
	if err != nil {
		return err.Error()
	}
	return text
}

// FetchAbout is GetAbout with the failure kept apart from the content. The
// error text is the message GetAbout would have returned.
func (c *APIClient) FetchAbout(ctx context.Context) (string, error) {
	cl := call{
		op:      "getAbout",
		method:  http.MethodGet,
		path:    AboutPath,
		noCache: true,
	}
	reqID := c.newID()

	body, err := c.send(ctx, cl, reqID)
	if err != nil {
		c.logFailure(ctx, cl, reqID, err)

		var se *statusError
		if errors.As(err, &se) {
			return "", &statusError{prefix: aboutStatusPrefix, code: se.code, statusText: se.statusText}
		}
		return "", fmt.Errorf("%s: %w", aboutErrorPrefix, err)
	}
	return string(body), nil
}

// GetObject looks up the public record of an item by key. The Result carries
// the "data" field of the server response.
func (c *APIClient) GetObject(ctx context.Context, key string) models.Result {
	return c.doJSON(ctx, call{
		op:         "getObject",
		method:     http.MethodGet,
		path:       "/api/object/" + netx.EncodeComponent(key),
		acceptJSON: true,
	}, true)
}
