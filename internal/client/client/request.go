package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/findreve/internal/client/models"
	"github.com/dmitrijs2005/findreve/internal/common"
	"github.com/dmitrijs2005/findreve/internal/netx"
	"golang.org/x/oauth2"
)

type authMode int

const (
	// authNone sends no Authorization header.
	authNone authMode = iota
	// authRequired fails without a request when no token is stored.
	authRequired
	// authBestEffort sends "Bearer <token>" even when the token is empty and
	// lets the server reject it.
	authBestEffort
)

// call describes one round trip. path must already be escaped.
type call struct {
	op         string
	method     string
	path       string
	query      *netx.Query
	form       url.Values
	auth       authMode
	acceptJSON bool
	noCache    bool
	failPrefix string
}

func (c *APIClient) token(ctx context.Context) string {
	tok, err := c.store.Get(ctx)
	if err != nil {
		c.log.Warn(ctx, "credential store read failed", "error", err)
		return ""
	}
	return tok
}

func (c *APIClient) target(cl call) string {
	u := c.baseURL + cl.path
	if cl.query.Len() > 0 {
		u += "?" + cl.query.Encode()
	}
	return u
}

// send performs the round trip and returns the body of a 2xx response.
// Non-2xx responses come back as *statusError.
func (c *APIClient) send(ctx context.Context, cl call, reqID string) ([]byte, error) {
	var token string
	if cl.auth != authNone {
		token = c.token(ctx)
		if token == "" && cl.auth == authRequired {
			return nil, errAccessTokenNotFound
		}
	}

	var body io.Reader
	if cl.form != nil {
		body = strings.NewReader(cl.form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.target(cl), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set(common.RequestIDHeaderName, reqID)
	if cl.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cl.acceptJSON {
		req.Header.Set("Accept", "application/json")
	}
	if cl.noCache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}
	if cl.auth != authNone {
		(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !netx.IsSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		prefix := cl.failPrefix
		if prefix == "" {
			prefix = requestFailedPrefix
		}
		return nil, &statusError{prefix: prefix, code: resp.StatusCode, statusText: netx.StatusText(resp)}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

// doJSON runs cl and wraps the JSON body into a Result. With unwrap set the
// Result carries the body's top-level "data" field instead of the body.
func (c *APIClient) doJSON(ctx context.Context, cl call, unwrap bool) models.Result {
	reqID := c.newID()

	body, err := c.send(ctx, cl, reqID)
	var data json.RawMessage
	if err == nil {
		data, err = decodeJSON(body, unwrap)
	}
	if err != nil {
		c.logFailure(ctx, cl, reqID, err)
		return models.Failure(err.Error())
	}

	c.log.Debug(ctx, "request succeeded", "op", cl.op, "request_id", reqID, "method", cl.method, "path", cl.path)
	return models.Success(data)
}

func decodeJSON(body []byte, unwrap bool) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !unwrap {
		return raw, nil
	}

	// Only an object has fields; anything else has no "data".
	if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '{' {
		return nil, nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return envelope.Data, nil
}

func (c *APIClient) logFailure(ctx context.Context, cl call, reqID string, err error) {
	args := []any{"op", cl.op, "request_id", reqID, "method", cl.method, "path", cl.path, "error", err}

	var se *statusError
	if errors.As(err, &se) {
		args = append(args, "status", se.code)
	}
	if errors.Is(err, errAccessTokenNotFound) {
		c.log.Warn(ctx, "request skipped", args...)
		return
	}
	c.log.Error(ctx, "request failed", args...)
}
