package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/findreve/internal/client/models"
	"github.com/dmitrijs2005/findreve/internal/netx"
)

const itemsPath = "/api/admin/items"

// GetItem fetches one item by id. Requires a stored token.
func (c *APIClient) GetItem(ctx context.Context, id string) models.Result {
	return c.doJSON(ctx, call{
		op:         "getItem",
		method:     http.MethodGet,
		path:       itemsPath,
		query:      (&netx.Query{}).Add("id", id),
		auth:       authRequired,
		acceptJSON: true,
	}, false)
}

// GetItems lists all items. Requires a stored token.
func (c *APIClient) GetItems(ctx context.Context) models.Result {
	return c.doJSON(ctx, call{
		op:     "getItems",
		method: http.MethodGet,
		path:   itemsPath,
		auth:   authRequired,
	}, false)
}

// AddItems creates an item. Parameters travel in the query string; the body
// is empty. The token is sent even when none is stored.
func (c *APIClient) AddItems(ctx context.Context, key, name, icon, phone string) models.Result {
	q := (&netx.Query{}).
		Add("key", key).
		Add("name", name).
		Add("icon", icon).
		Add("phone", phone)

	return c.doJSON(ctx, call{
		op:         "addItems",
		method:     http.MethodPost,
		path:       itemsPath,
		query:      q,
		auth:       authBestEffort,
		acceptJSON: true,
	}, false)
}

// UpdateItems patches an item. status is sent only when non-empty and context
// only when it is non-empty and status is "lost".
func (c *APIClient) UpdateItems(ctx context.Context, p models.ItemPatch) models.Result {
	return c.doJSON(ctx, call{
		op:         "updateItems",
		method:     http.MethodPatch,
		path:       itemsPath,
		query:      patchQuery(p),
		auth:       authBestEffort,
		acceptJSON: true,
	}, false)
}

func patchQuery(p models.ItemPatch) *netx.Query {
	q := (&netx.Query{}).
		Add("id", p.ID).
		Add("key", p.Key).
		Add("name", p.Name).
		Add("icon", p.Icon).
		Add("phone", p.Phone)

	if p.Status != "" {
		q.Add("status", p.Status)
	}
	if p.Context != "" && p.Status == models.ItemStatusLost {
		q.Add("context", p.Context)
	}
	return q
}

// DeleteItem removes an item by id. The token is sent even when none is stored.
func (c *APIClient) DeleteItem(ctx context.Context, id string) models.Result {
	return c.doJSON(ctx, call{
		op:         "deleteItem",
		method:     http.MethodDelete,
		path:       itemsPath,
		query:      (&netx.Query{}).Add("id", id),
		auth:       authBestEffort,
		acceptJSON: true,
	}, false)
}
