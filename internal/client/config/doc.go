// Package config loads runtime configuration for the Findreve CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//  4. FINDREVE_SECRET_KEY from the environment, the only source of the
//     sealing secret besides the JSON file.
//
// Supported flags
//
//	-a string   server base URL (http://127.0.0.1:8167)
//	-s string   credential store backend: memory, sqlite, keyring, redis
//	-d string   SQLite database path
//	-r string   redis address
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "https://findreve.example.com",
//	  "store_backend": "redis",
//	  "db_path": "findreve/client.db",
//	  "keyring_service": "findreve",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "redis_prefix": "findreve:",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
package config
