package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/findreve/internal/client/credstore"
	"github.com/dmitrijs2005/findreve/internal/client/models"
	"github.com/dmitrijs2005/findreve/internal/client/tokeninfo"
	"github.com/dmitrijs2005/findreve/internal/logging"
	"github.com/google/uuid"
)

// Client is the operation surface of the Findreve API.
type Client interface {
	Login(ctx context.Context, username, password string) models.Result
	IsLogin(ctx context.Context) bool
	Logout(ctx context.Context)
	Session(ctx context.Context) (tokeninfo.Info, bool)

	GetItem(ctx context.Context, id string) models.Result
	GetItems(ctx context.Context) models.Result
	AddItems(ctx context.Context, key, name, icon, phone string) models.Result
	UpdateItems(ctx context.Context, patch models.ItemPatch) models.Result
	DeleteItem(ctx context.Context, id string) models.Result

	GetAbout(ctx context.Context) string
	FetchAbout(ctx context.Context) (string, error)
	GetObject(ctx context.Context, key string) models.Result
}

var _ Client = (*APIClient)(nil)

type APIClient struct {
	baseURL    string
	httpClient *http.Client
	store      credstore.Store
	log        logging.Logger
	newID      func() string
	onLogout   func()
}

type Option func(*APIClient)

// WithHTTPClient replaces http.DefaultClient (tests inject httptest clients).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.httpClient = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *APIClient) { c.log = l }
}

// WithRequestIDs overrides the X-Request-ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *APIClient) { c.newID = fn }
}

// WithLogoutHook sets what runs after Logout cleared the token; the CLI
// uses it to drop back to the login prompt.
func WithLogoutHook(fn func()) Option {
	return func(c *APIClient) { c.onLogout = fn }
}

// New builds a client for the server at baseURL, e.g. "http://127.0.0.1:8167"
// or "https://host/prefix". The store must not be nil.
func New(baseURL string, store credstore.Store, opts ...Option) (*APIClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q: missing host", baseURL)
	}
	if store == nil {
		return nil, fmt.Errorf("nil credential store")
	}

	c := &APIClient{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: http.DefaultClient,
		store:      store,
		log:        logging.Discard(),
		newID:      uuid.NewString,
		onLogout:   func() {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}
