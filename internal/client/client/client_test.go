package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/findreve/internal/client/credstore"
	"github.com/dmitrijs2005/findreve/internal/client/models"
	"github.com/dmitrijs2005/findreve/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/findreve/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake Remote API ----

type recorded struct {
	Method      string
	Path        string
	EscapedPath string
	RawQuery    string
	Query       url.Values
	Header      http.Header
	Body        string
}

type fakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []recorded
}

func (f *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recorded{
			Method:      r.Method,
			Path:        r.URL.Path,
			EscapedPath: r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			Query:       r.URL.Query(),
			Header:      r.Header.Clone(),
			Body:        string(b),
		})
		f.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(b))
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func (f *fakeAPI) last(t *testing.T) recorded {
	t.Helper()
	c := f.calls()
	require.NotEmpty(t, c, "expected at least one request")
	return c[len(c)-1]
}

func newFakeAPI(t *testing.T, routes func(r *mux.Router)) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	r := mux.NewRouter()
	r.Use(f.record)
	routes(r)
	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// requireBearer mimics the server's admin dependency.
func requireBearer(token string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			respond(http.StatusUnauthorized, `{"detail":"Login required"}`)(w, r)
			return
		}
		next(w, r)
	}
}

func newTestClient(t *testing.T, api *fakeAPI, store credstore.Store, opts ...Option) *APIClient {
	t.Helper()
	c, err := New(api.srv.URL, store, append([]Option{WithHTTPClient(api.srv.Client())}, opts...)...)
	require.NoError(t, err)
	return c
}

// ---- construction ----

func TestNew_ValidatesInput(t *testing.T) {
	store := credstore.NewMemoryStore("")

	tests := []struct {
		name    string
		baseURL string
		store   credstore.Store
		wantErr bool
	}{
		{"ok", "http://127.0.0.1:8167", store, false},
		{"ok with prefix and slash", "https://example.com/findreve/", store, false},
		{"bad scheme", "ftp://example.com", store, true},
		{"no host", "http://", store, true},
		{"unparsable", "http://[::1", store, true},
		{"nil store", "http://example.com", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.baseURL, tt.store)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNew_BasePathIsPreserved(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		respond(http.StatusOK, `[]`)(w, r)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/prefix/", credstore.NewMemoryStore("abc"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	require.True(t, c.GetItems(context.Background()).OK())
	assert.Equal(t, "/prefix/api/admin/items", gotPath)
}

// ---- login ----

func TestLogin_SuccessStoresToken(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/token", respond(http.StatusOK, `{"access_token":"abc","token_type":"bearer"}`)).Methods(http.MethodPost)
	})
	store := credstore.NewMemoryStore("")
	c := newTestClient(t, api, store)

	res := c.Login(context.Background(), "admin", "p@ss word&x")

	assert.Equal(t, models.Success(nil), res)
	tok, _ := store.Get(context.Background())
	assert.Equal(t, "abc", tok)

	req := api.last(t)
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	assert.Empty(t, req.Header.Get("Authorization"), "login is unauthenticated")
	form, err := url.ParseQuery(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "admin", form.Get("username"))
	assert.Equal(t, "p@ss word&x", form.Get("password"))
}

func TestLogin_FailureLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantDetail string
	}{
		{
			name:       "401",
			handler:    respond(http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`),
			wantDetail: "login failed: Unauthorized",
		},
		{
			name:       "500",
			handler:    respond(http.StatusInternalServerError, `oops`),
			wantDetail: "login failed: Internal Server Error",
		},
		{
			name:       "no access_token in 2xx",
			handler:    respond(http.StatusOK, `{"token_type":"bearer"}`),
			wantDetail: "response carries no access_token",
		},
		{
			name:       "invalid json",
			handler:    respond(http.StatusOK, `<html>`),
			wantDetail: "decode token response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, func(r *mux.Router) {
				r.HandleFunc("/api/token", tt.handler).Methods(http.MethodPost)
			})
			store := credstore.NewMemoryStore("previous")
			c := newTestClient(t, api, store)

			res := c.Login(context.Background(), "admin", "wrong")

			assert.Equal(t, models.StatusFailed, res.Status)
			assert.Contains(t, res.Detail, tt.wantDetail)
			assert.Nil(t, res.Data)
			tok, _ := store.Get(context.Background())
			assert.Equal(t, "previous", tok)
		})
	}
}

type failingStore struct {
	credstore.MemoryStore
	getErr, setErr, clearErr error
}

func (f *failingStore) Get(ctx context.Context) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.MemoryStore.Get(ctx)
}

func (f *failingStore) Set(ctx context.Context, token string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, token)
}

func (f *failingStore) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.MemoryStore.Clear(ctx)
}

func TestLogin_StoreWriteFailureIsReported(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/token", respond(http.StatusOK, `{"access_token":"abc"}`)).Methods(http.MethodPost)
	})
	c := newTestClient(t, api, &failingStore{setErr: errors.New("disk full")})

	res := c.Login(context.Background(), "admin", "pw")
	assert.Equal(t, models.Failure("disk full"), res)
}

// ---- is_login / logout ----

func TestIsLogin(t *testing.T) {
	routes := func(r *mux.Router) {
		r.HandleFunc("/api/admin", requireBearer("abc", respond(http.StatusOK, `true`))).Methods(http.MethodGet)
	}

	t.Run("no token: false without a request", func(t *testing.T) {
		api := newFakeAPI(t, routes)
		c := newTestClient(t, api, credstore.NewMemoryStore(""))

		assert.False(t, c.IsLogin(context.Background()))
		assert.Empty(t, api.calls())
	})

	t.Run("valid token: true", func(t *testing.T) {
		api := newFakeAPI(t, routes)
		c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

		assert.True(t, c.IsLogin(context.Background()))
		assert.Equal(t, "Bearer abc", api.last(t).Header.Get("Authorization"))
	})

	t.Run("rejected token: false", func(t *testing.T) {
		api := newFakeAPI(t, routes)
		c := newTestClient(t, api, credstore.NewMemoryStore("stale"))

		assert.False(t, c.IsLogin(context.Background()))
		assert.Len(t, api.calls(), 1)
	})

	t.Run("server down: false", func(t *testing.T) {
		api := newFakeAPI(t, routes)
		c := newTestClient(t, api, credstore.NewMemoryStore("abc"))
		api.srv.Close()

		assert.False(t, c.IsLogin(context.Background()))
	})

	t.Run("store read error counts as no token", func(t *testing.T) {
		api := newFakeAPI(t, routes)
		c := newTestClient(t, api, &failingStore{getErr: errors.New("locked")})

		assert.False(t, c.IsLogin(context.Background()))
		assert.Empty(t, api.calls())
	})
}

func TestLogout_ClearsTokenAndRunsHook(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/admin", respond(http.StatusOK, `true`)).Methods(http.MethodGet)
	})
	store := credstore.NewMemoryStore("abc")
	navigated := 0
	c := newTestClient(t, api, store, WithLogoutHook(func() { navigated++ }))

	c.Logout(context.Background())

	tok, _ := store.Get(context.Background())
	assert.Empty(t, tok)
	assert.Equal(t, 1, navigated)
	assert.Empty(t, api.calls(), "logout is local only")

	assert.False(t, c.IsLogin(context.Background()))
	assert.Empty(t, api.calls(), "is_login after logout must not hit the network")
}

func TestLogout_StoreErrorStillNavigates(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {})
	navigated := false
	c := newTestClient(t, api, &failingStore{clearErr: errors.New("boom")}, WithLogoutHook(func() { navigated = true }))

	c.Logout(context.Background())
	assert.True(t, navigated)
}

// ---- items ----

func TestAdminOps_MissingTokenShortCircuits(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/admin/items", respond(http.StatusOK, `[]`))
	})
	c := newTestClient(t, api, credstore.NewMemoryStore(""))
	ctx := context.Background()

	for name, res := range map[string]models.Result{
		"getItem":  c.GetItem(ctx, "1"),
		"getItems": c.GetItems(ctx),
	} {
		assert.Equal(t, models.Failure("Access token not found"), res, name)
	}
	assert.Empty(t, api.calls())
}

func TestAdminOps_BestEffortAuthStillSends(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/admin/items", requireBearer("abc", respond(http.StatusOK, `null`)))
	})
	c := newTestClient(t, api, credstore.NewMemoryStore(""))
	ctx := context.Background()

	results := []models.Result{
		c.AddItems(ctx, "k", "n", "i", "p"),
		c.UpdateItems(ctx, models.ItemPatch{ID: "1"}),
		c.DeleteItem(ctx, "1"),
	}
	for _, res := range results {
		assert.Equal(t, models.Failure("request failed: Unauthorized"), res)
	}

	calls := api.calls()
	require.Len(t, calls, 3)
	for _, req := range calls {
		assert.Equal(t, "Bearer", strings.TrimSpace(req.Header.Get("Authorization")))
	}
}

func TestGetItems_PassesBodyThrough(t *testing.T) {
	body := `{"code":0,"data":[{"id":1,"key":"k1","name":"Wallet","status":"ok"}],"msg":""}`
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/admin/items", requireBearer("abc", respond(http.StatusOK, body))).Methods(http.MethodGet)
	})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

	res := c.GetItems(context.Background())

	require.True(t, res.OK())
	assert.JSONEq(t, body, string(res.Data))
	assert.Empty(t, res.Detail)
	assert.Empty(t, api.last(t).RawQuery)
}

func TestGetItem_SendsIDAndAccept(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/admin/items", requireBearer("abc", respond(http.StatusOK, `{"code":0,"data":[]}`))).Methods(http.MethodGet)
	})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

	res := c.GetItem(context.Background(), "42")

	require.True(t, res.OK())
	req := api.last(t)
	assert.Equal(t, "id=42", req.RawQuery)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestAddItems_QueryAndEmptyBody(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/admin/items", requireBearer("abc", respond(http.StatusOK, `null`))).Methods(http.MethodPost)
	})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

	res := c.AddItems(context.Background(), "k 1", "Keys & Wallet", "key", "+7 900")

	assert.Equal(t, models.Success([]byte("null")), res)
	req := api.last(t)
	assert.Equal(t, "key=k%201&name=Keys%20%26%20Wallet&icon=key&phone=%2B7%20900", req.RawQuery)
	assert.Equal(t, "+7 900", req.Query.Get("phone"))
	assert.Empty(t, req.Body)
}

func TestUpdateItems_ConditionalParams(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		context     string
		wantStatus  string
		wantContext string
		hasStatus   bool
		hasContext  bool
	}{
		{"lost with context", "lost", "office", "lost", "office", true, true},
		{"found drops context", "found", "office", "found", "", true, false},
		{"ok drops context", "ok", "office", "ok", "", true, false},
		{"empty status omitted", "", "office", "", "", false, false},
		{"lost without context", "lost", "", "lost", "", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, func(r *mux.Router) {
				r.HandleFunc("/api/admin/items", respond(http.StatusOK, `{"code":0}`)).Methods(http.MethodPatch)
			})
			c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

			res := c.UpdateItems(context.Background(), models.ItemPatch{
				ID: "7", Key: "k", Name: "n", Icon: "i", Phone: "1",
				Status: tt.status, Context: tt.context,
			})
			require.True(t, res.OK())

			q := api.last(t).Query
			assert.Equal(t, "7", q.Get("id"))
			assert.Equal(t, "k", q.Get("key"))
			assert.Equal(t, tt.hasStatus, q.Has("status"))
			assert.Equal(t, tt.wantStatus, q.Get("status"))
			assert.Equal(t, tt.hasContext, q.Has("context"))
			assert.Equal(t, tt.wantContext, q.Get("context"))
		})
	}
}

func TestPatchQuery_Order(t *testing.T) {
	q := patchQuery(models.ItemPatch{ID: "1", Key: "k", Name: "n", Icon: "i", Phone: "p", Status: "lost", Context: "c"})
	assert.Equal(t, "id=1&key=k&name=n&icon=i&phone=p&status=lost&context=c", q.Encode())
}

func TestIDsArePercentEncoded(t *testing.T) {
	ids := []string{"a&b=c", "x/y", "with space", "50%", "?#"}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			api := newFakeAPI(t, func(r *mux.Router) {
				r.HandleFunc("/api/admin/items", respond(http.StatusOK, `{}`))
			})
			c := newTestClient(t, api, credstore.NewMemoryStore("abc"))
			ctx := context.Background()

			require.True(t, c.GetItem(ctx, id).OK())
			require.True(t, c.DeleteItem(ctx, id).OK())

			for _, req := range api.calls() {
				assert.Equal(t, []string{id}, req.Query["id"])
				assert.Len(t, req.Query, 1, "id must stay a single parameter")
			}
		})
	}
}

func TestDeleteItem_Method(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/admin/items", respond(http.StatusOK, `{"code":0,"data":null,"msg":""}`)).Methods(http.MethodDelete)
	})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

	res := c.DeleteItem(context.Background(), "9")
	require.True(t, res.OK())
	assert.Equal(t, http.MethodDelete, api.last(t).Method)
}

// ---- failure policy across operations ----

func TestNon2xx_FailsWithStatusText(t *testing.T) {
	codes := []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError}

	for _, code := range codes {
		t.Run(http.StatusText(code), func(t *testing.T) {
			api := newFakeAPI(t, func(r *mux.Router) {
				r.PathPrefix("/").Handler(respond(code, `{"detail":"nope"}`))
			})
			store := credstore.NewMemoryStore("abc")
			c := newTestClient(t, api, store)
			ctx := context.Background()

			results := map[string]models.Result{
				"getItem":     c.GetItem(ctx, "1"),
				"getItems":    c.GetItems(ctx),
				"addItems":    c.AddItems(ctx, "k", "n", "i", "p"),
				"updateItems": c.UpdateItems(ctx, models.ItemPatch{ID: "1", Status: "lost", Context: "x"}),
				"deleteItem":  c.DeleteItem(ctx, "1"),
				"getObject":   c.GetObject(ctx, "k"),
			}
			for op, res := range results {
				assert.Equal(t, models.StatusFailed, res.Status, op)
				assert.Equal(t, "request failed: "+http.StatusText(code), res.Detail, op)
				assert.Nil(t, res.Data, op)
			}

			tok, _ := store.Get(ctx)
			assert.Equal(t, "abc", tok, "failures never touch the credential")
		})
	}
}

func TestCustomReasonPhraseIsSurfaced(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: 401,
			Status:     "401 Login Required",
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Header:     http.Header{},
			Request:    r,
		}, nil
	})
	c, err := New("http://findreve.test", credstore.NewMemoryStore("abc"), WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	assert.Equal(t, models.Failure("request failed: Login Required"), c.GetItems(context.Background()))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestInvalidJSON_Fails(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.PathPrefix("/").Handler(respond(http.StatusOK, `<html>not json</html>`))
	})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))
	ctx := context.Background()

	for _, res := range []models.Result{c.GetItems(ctx), c.GetObject(ctx, "k")} {
		assert.Equal(t, models.StatusFailed, res.Status)
		assert.Contains(t, res.Detail, "decode response")
	}
}

func TestTransportError_Fails(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))
	api.srv.Close()
	ctx := context.Background()

	results := []models.Result{
		c.Login(ctx, "u", "p"),
		c.GetItems(ctx),
		c.AddItems(ctx, "k", "n", "i", "p"),
		c.GetObject(ctx, "k"),
	}
	for _, res := range results {
		assert.Equal(t, models.StatusFailed, res.Status)
		assert.NotEmpty(t, res.Detail)
	}
}

func TestCanceledContext_Fails(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.PathPrefix("/").Handler(respond(http.StatusOK, `[]`))
	})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.GetItems(ctx)
	assert.Equal(t, models.StatusFailed, res.Status)
	assert.Contains(t, res.Detail, "context canceled")
}

// ---- public endpoints ----

func TestGetObject_UnwrapsData(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/object/{key}", respond(http.StatusOK, `{"code":0,"data":[3,"k1","Wallet","wallet","lost"],"msg":""}`)).Methods(http.MethodGet)
	})
	c := newTestClient(t, api, credstore.NewMemoryStore(""))

	res := c.GetObject(context.Background(), "k1")

	require.True(t, res.OK())
	assert.JSONEq(t, `[3,"k1","Wallet","wallet","lost"]`, string(res.Data))
	req := api.last(t)
	assert.Empty(t, req.Header.Get("Authorization"), "object lookup is public")
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestGetObject_MissingDataField(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.PathPrefix("/api/object/").Handler(respond(http.StatusOK, `{"code":0}`))
	})
	c := newTestClient(t, api, credstore.NewMemoryStore(""))

	res := c.GetObject(context.Background(), "k1")
	assert.Equal(t, models.Success(nil), res)
}

func TestGetObject_KeyIsEscapedAsOneSegment(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.PathPrefix("/api/object/").Handler(respond(http.StatusOK, `{"data":{}}`))
	})
	c := newTestClient(t, api, credstore.NewMemoryStore(""))

	require.True(t, c.GetObject(context.Background(), "a/b c?d").OK())

	req := api.last(t)
	assert.Equal(t, "/api/object/a%2Fb%20c%3Fd", req.EscapedPath)
	assert.Empty(t, req.RawQuery)
}

func TestGetAbout(t *testing.T) {
	t.Run("returns raw text without cache", func(t *testing.T) {
		api := newFakeAPI(t, func(r *mux.Router) {
			r.HandleFunc("/static/readme.md", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/markdown")
				_, _ = io.WriteString(w, "# Findreve\n\nLost & found.\n")
			}).Methods(http.MethodGet)
		})
		c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

		assert.Equal(t, "# Findreve\n\nLost & found.\n", c.GetAbout(context.Background()))
		req := api.last(t)
		assert.Equal(t, "no-cache", req.Header.Get("Cache-Control"))
		assert.Empty(t, req.Header.Get("Authorization"))
	})

	t.Run("non-2xx becomes a message", func(t *testing.T) {
		api := newFakeAPI(t, func(r *mux.Router) {})
		c := newTestClient(t, api, credstore.NewMemoryStore(""))

		assert.Equal(t, "unable to load content: Not Found", c.GetAbout(context.Background()))
	})

	t.Run("transport error becomes a message", func(t *testing.T) {
		api := newFakeAPI(t, func(r *mux.Router) {})
		c := newTestClient(t, api, credstore.NewMemoryStore(""))
		api.srv.Close()

		assert.True(t, strings.HasPrefix(c.GetAbout(context.Background()), "loading error: "))
	})
}

func TestFetchAbout_SeparatesFailureFromContent(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.Handle(AboutPath, respond(http.StatusOK, "# Findreve\n")).Methods(http.MethodGet)
	})
	c := newTestClient(t, api, credstore.NewMemoryStore(""))
	ctx := context.Background()

	text, err := c.FetchAbout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "# Findreve\n", text)

	missing := newTestClient(t, newFakeAPI(t, func(r *mux.Router) {}), credstore.NewMemoryStore(""))
	text, err = missing.FetchAbout(ctx)
	require.EqualError(t, err, "unable to load content: Not Found")
	assert.Empty(t, text)
	assert.Equal(t, err.Error(), missing.GetAbout(ctx))
}

// ---- ambient behaviour ----

func TestRequestIDHeaderAndFailureLog(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.PathPrefix("/").Handler(respond(http.StatusNotFound, `{}`))
	})
	var buf bytes.Buffer
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"),
		WithRequestIDs(func() string { return "req-1" }),
		WithLogger(logging.New(&buf, "debug", "text")),
	)

	res := c.GetItem(context.Background(), "5")
	require.False(t, res.OK())

	assert.Equal(t, "req-1", api.last(t).Header.Get("X-Request-ID"))
	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "op=getItem")
	assert.Contains(t, out, "status=404")
}

func TestDefaultRequestIDsAreUnique(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.PathPrefix("/").Handler(respond(http.StatusOK, `[]`))
	})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))
	ctx := context.Background()

	c.GetItems(ctx)
	c.GetItems(ctx)

	calls := api.calls()
	require.Len(t, calls, 2)
	a, b := calls[0].Header.Get("X-Request-ID"), calls[1].Header.Get("X-Request-ID")
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestSession(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {})
	ctx := context.Background()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	info, ok := newTestClient(t, api, credstore.NewMemoryStore(tok)).Session(ctx)
	require.True(t, ok)
	assert.Equal(t, "admin", info.Subject)
	assert.True(t, exp.Equal(info.ExpiresAt))

	_, ok = newTestClient(t, api, credstore.NewMemoryStore("")).Session(ctx)
	assert.False(t, ok)

	_, ok = newTestClient(t, api, credstore.NewMemoryStore("opaque")).Session(ctx)
	assert.False(t, ok)

	assert.Empty(t, api.calls(), "session is read locally")
}

func TestSession_SavedAtFromStore(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {})
	ctx := context.Background()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "admin",
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	db, err := metadata.Open(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := credstore.NewSealedStore(credstore.NewMetadataStore(db), []byte("k"))
	require.NoError(t, store.Set(ctx, tok))

	info, ok := newTestClient(t, api, store).Session(ctx)
	require.True(t, ok)
	assert.False(t, info.SavedAt.IsZero())
	assert.WithinDuration(t, time.Now(), info.SavedAt, time.Minute)

	info, ok = newTestClient(t, api, credstore.NewMemoryStore(tok)).Session(ctx)
	require.True(t, ok)
	assert.True(t, info.SavedAt.IsZero())
}

func TestConcurrentCallsShareStore(t *testing.T) {
	api := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/api/admin/items", requireBearer("abc", respond(http.StatusOK, `[]`)))
	})
	c := newTestClient(t, api, credstore.NewMemoryStore("abc"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, c.GetItems(context.Background()).OK())
		}()
	}
	wg.Wait()
	assert.Len(t, api.calls(), 8)
}
