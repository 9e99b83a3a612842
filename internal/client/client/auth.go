package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/findreve/internal/client/credstore"
	"github.com/dmitrijs2005/findreve/internal/client/models"
	"github.com/dmitrijs2005/findreve/internal/client/tokeninfo"
	"golang.org/x/oauth2"
)

// Login posts the form credentials to /api/token and stores the returned
// access token. The store is written only after a 2xx response carrying a
// non-empty access_token.
func (c *APIClient) Login(ctx context.Context, username, password string) models.Result {
	cl := call{
		op:         "login",
		method:     http.MethodPost,
		path:       "/api/token",
		form:       url.Values{"username": {username}, "password": {password}},
		failPrefix: loginFailedPrefix,
	}
	reqID := c.newID()

	err := func() error {
		body, err := c.send(ctx, cl, reqID)
		if err != nil {
			return err
		}

		var tok oauth2.Token
		if err := json.Unmarshal(body, &tok); err != nil {
			return fmt.Errorf("decode token response: %w", err)
		}
		if tok.AccessToken == "" {
			return errNoAccessToken
		}
		return c.store.Set(ctx, tok.AccessToken)
	}()
	if err != nil {
		c.logFailure(ctx, cl, reqID, err)
		return models.Failure(err.Error())
	}

	c.log.Info(ctx, "logged in", "request_id", reqID, "username", username)
	return models.Success(nil)
}

// IsLogin probes /api/admin with the stored token. It returns false without
// a request when no token is stored, and false for any failure.
func (c *APIClient) IsLogin(ctx context.Context) bool {
	cl := call{
		op:     "isLogin",
		method: http.MethodGet,
		path:   "/api/admin",
		auth:   authRequired,
	}
	reqID := c.newID()

	if _, err := c.send(ctx, cl, reqID); err != nil {
		c.log.Debug(ctx, "session probe failed", "request_id", reqID, "error", err)
		return false
	}
	return true
}

// Logout clears the stored token and runs the logout hook. A store error is
// logged; the hook runs regardless.
func (c *APIClient) Logout(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "credential store clear failed", "op", "logout", "error", err)
	}
	c.onLogout()
}

// Session describes the stored token for display. ok is false when no token
// is stored or it is not a JWT. SavedAt is filled in when the store keeps a
// write timestamp.
func (c *APIClient) Session(ctx context.Context) (tokeninfo.Info, bool) {
	tok := c.token(ctx)
	if tok == "" {
		return tokeninfo.Info{}, false
	}
	info, err := tokeninfo.Describe(tok)
	if err != nil {
		c.log.Debug(ctx, "stored token is not a jwt", "error", err)
		return tokeninfo.Info{}, false
	}

	if ts, ok := c.store.(credstore.Timestamped); ok {
		at, found, err := ts.SavedAt(ctx)
		switch {
		case err != nil:
			c.log.Debug(ctx, "token timestamp unavailable", "error", err)
		case found:
			info.SavedAt = at
		}
	}
	return info, true
}
