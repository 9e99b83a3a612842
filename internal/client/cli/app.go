package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/findreve/internal/client/client"
	"github.com/dmitrijs2005/findreve/internal/client/config"
	"github.com/dmitrijs2005/findreve/internal/client/credstore"
	"github.com/dmitrijs2005/findreve/internal/client/markdown"
	"github.com/dmitrijs2005/findreve/internal/logging"
)

type App struct {
	config   *config.Config
	api      client.Client
	closer   io.Closer
	loggedIn bool
	userName string
	readme   *markdown.Renderer
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the configured credential store and builds the API client
// on top of it. Diagnostics go to stderr, user output to stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	store, closer, err := credstore.Open(ctx, c.StoreOptions())
	if err != nil {
		log.Printf("error opening credential store: %s", err.Error())
		return nil, err
	}

	a := &App{
		config: c,
		closer: closer,
		readme: markdown.New(strings.TrimRight(c.ServerURL, "/") + client.AboutPath),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	api, err := client.New(c.ServerURL, store,
		client.WithLogger(logger.With("server", c.ServerURL)),
		client.WithLogoutHook(a.onLogout),
	)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	a.api = api

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.closer != nil {
			if err := a.closer.Close(); err != nil {
				log.Printf("error closing credential store: %s", err.Error())
			}
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

// onLogout is the client's logout hook: the session is gone, so the prompt
// drops back to the anonymous state where only login and public commands apply.
func (a *App) onLogout() {
	a.loggedIn = false
	a.userName = ""
	log.Printf("Logged out")
}
