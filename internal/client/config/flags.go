package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/findreve/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL
//	-s string   credential store backend
//	-d string   SQLite database path
//	-r string   redis address
//	-l string   log level
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so -c/-config never trips it.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "findreve server base url")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "credential store: memory, sqlite, keyring or redis")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
