package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/findreve/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from an explicit zero value.
type JsonConfig struct {
	ServerURL      *string `json:"server_url"`
	StoreBackend   *string `json:"store_backend"`
	DBPath         *string `json:"db_path"`
	KeyringService *string `json:"keyring_service"`
	RedisAddr      *string `json:"redis_addr"`
	RedisDB        *int    `json:"redis_db"`
	RedisPrefix    *string `json:"redis_prefix"`
	SecretKey      *string `json:"secret_key"`
	LogLevel       *string `json:"log_level"`
	LogFormat      *string `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Keys missing from the
// file keep their current value.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.StoreBackend, jc.StoreBackend)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.KeyringService, jc.KeyringService)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
