// Package fakeapi is an in-process stand-in for the Findreve server. It
// serves the endpoints the client talks to with in-memory items and a
// single admin account, for end-to-end tests of the client and the CLI.
package fakeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/findreve/internal/client/models"
	"github.com/dmitrijs2005/findreve/internal/common"
	"github.com/dmitrijs2005/findreve/internal/logging"
	"github.com/gorilla/mux"
)

type ctxKey string

const subjectKey ctxKey = "subject"

type Server struct {
	router   *mux.Router
	logger   logging.Logger
	username string
	password string
	secret   []byte
	validity time.Duration
	readme   string

	mu     sync.Mutex
	items  map[int64]models.Item
	nextID int64
}

type Option func(*Server)

func WithCredentials(username, password string) Option {
	return func(s *Server) { s.username, s.password = username, password }
}

// WithSecret fixes the token signing key; by default every server gets a
// random one.
func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

func WithReadme(text string) Option {
	return func(s *Server) { s.readme = text }
}

func WithTokenValidity(d time.Duration) Option {
	return func(s *Server) { s.validity = d }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds a server with the admin account "admin"/"admin" unless
// overridden.
func New(opts ...Option) *Server {
	s := &Server{
		logger:   logging.Discard(),
		username: "admin",
		password: "admin",
		validity: time.Hour,
		readme:   "# Findreve\n",
		items:    make(map[int64]models.Item),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.secret == nil {
		secret, err := common.MakeRandHexString(32)
		if err != nil {
			panic(err)
		}
		s.secret = []byte(secret)
	}
	s.logger = s.logger.With("module", "fakeapi")

	r := mux.NewRouter()
	r.HandleFunc("/api/token", s.token).Methods(http.MethodPost)
	r.HandleFunc("/api/object/{key}", s.object).Methods(http.MethodGet)
	r.HandleFunc("/static/readme.md", s.about).Methods(http.MethodGet)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(s.accessTokenMiddleware)
	admin.HandleFunc("", s.adminCheck).Methods(http.MethodGet)
	admin.HandleFunc("/items", s.listItems).Methods(http.MethodGet)
	admin.HandleFunc("/items", s.addItem).Methods(http.MethodPost)
	admin.HandleFunc("/items", s.updateItem).Methods(http.MethodPatch)
	admin.HandleFunc("/items", s.deleteItem).Methods(http.MethodDelete)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Items returns a snapshot ordered by id.
func (s *Server) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) accessTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || accessToken == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		subject, err := SubjectFromToken(accessToken, s.secret)
		if err != nil {
			s.logger.Info(r.Context(), "rejected token", "error", err)
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if r.PostForm.Get("username") != s.username || r.PostForm.Get("password") != s.password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	tok, err := GenerateToken(s.username, s.secret, s.validity)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info(r.Context(), "issued token", "username", s.username)
	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok, "token_type": "bearer"})
}

func (s *Server) adminCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, true)
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "id must be an integer")
			return
		}
		s.mu.Lock()
		it, ok := s.items[n]
		s.mu.Unlock()
		if !ok {
			writeEnvelope(w, 404, []models.Item{}, "item not found")
			return
		}
		writeEnvelope(w, 0, []models.Item{it}, "")
		return
	}

	writeEnvelope(w, 0, s.Items(), "")
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	it := models.Item{
		ID:         s.nextID,
		Key:        q.Get("key"),
		Name:       q.Get("name"),
		Icon:       q.Get("icon"),
		Phone:      models.FlexString(q.Get("phone")),
		Status:     "ok",
		CreateTime: time.Now().UTC().Format(time.RFC3339),
	}
	s.items[it.ID] = it
	s.nextID++
	s.mu.Unlock()

	writeEnvelope(w, 0, nil, "item added")
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := strconv.ParseInt(q.Get("id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "id must be an integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		writeEnvelope(w, 404, nil, "item not found")
		return
	}
	it.Key, it.Name, it.Icon = q.Get("key"), q.Get("name"), q.Get("icon")
	it.Phone = models.FlexString(q.Get("phone"))
	if q.Has("status") {
		it.Status = q.Get("status")
		if it.Status == models.ItemStatusLost {
			it.LostDescription = q.Get("context")
			it.LostTime = time.Now().UTC().Format(time.RFC3339)
		} else {
			it.LostDescription, it.LostTime = "", ""
		}
	}
	s.items[id] = it

	writeEnvelope(w, 0, nil, "item updated")
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "id must be an integer")
		return
	}

	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()

	writeEnvelope(w, 0, nil, "item deleted")
}

// object serves the public record: the finder sees the name, icon, status
// and, for lost items, the owner's phone and message.
func (s *Server) object(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.Key != key {
			continue
		}
		public := map[string]any{
			"key":    it.Key,
			"name":   it.Name,
			"icon":   it.Icon,
			"status": it.Status,
		}
		if it.Status == models.ItemStatusLost {
			public["phone"] = it.Phone
			public["context"] = it.LostDescription
		}
		writeEnvelope(w, 0, public, "")
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"code": 404, "data": nil, "msg": "object not found"})
}

func (s *Server) about(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(s.readme))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeEnvelope answers 200 with the server's {code, data, msg} wrapper;
// application errors travel in code, not in the HTTP status.
func writeEnvelope(w http.ResponseWriter, code int, data any, msg string) {
	writeJSON(w, http.StatusOK, map[string]any{"code": code, "data": data, "msg": msg})
}
