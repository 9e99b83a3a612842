package config

import (
	"os"

	"github.com/dmitrijs2005/findreve/internal/client/credstore"
)

// SecretKeyEnv names the environment variable carrying the sealing secret.
const SecretKeyEnv = "FINDREVE_SECRET_KEY"

// Config holds runtime settings for the Findreve CLI.
//
// Fields:
//   - ServerURL: base URL of the Findreve server, scheme included.
//   - StoreBackend: credential store backend (memory, sqlite, keyring, redis).
//   - DBPath: SQLite file for the sqlite backend.
//   - KeyringService: service name for the keyring backend.
//   - RedisAddr, RedisDB, RedisPrefix: redis backend connection and key prefix.
//   - SecretKey: when set, the token is sealed at rest. Env only.
//   - LogLevel, LogFormat: slog level (debug|info|warn|error) and handler (text|json).
type Config struct {
	ServerURL      string
	StoreBackend   string
	DBPath         string
	KeyringService string
	RedisAddr      string
	RedisDB        int
	RedisPrefix    string
	SecretKey      string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8167"
	c.StoreBackend = credstore.BackendSQLite
	c.DBPath = "findreve/client.db"
	c.KeyringService = "findreve"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RedisPrefix = "findreve:"
	c.SecretKey = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// StoreOptions maps the config onto credstore.Open options.
func (c *Config) StoreOptions() credstore.Options {
	return credstore.Options{
		Backend:        c.StoreBackend,
		DBPath:         c.DBPath,
		KeyringService: c.KeyringService,
		RedisAddr:      c.RedisAddr,
		RedisDB:        c.RedisDB,
		RedisPrefix:    c.RedisPrefix,
		SecretKey:      c.SecretKey,
	}
}

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(SecretKeyEnv); ok {
		cfg.SecretKey = v
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags (if present) and the environment.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}
