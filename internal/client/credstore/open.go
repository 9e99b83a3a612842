package credstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/findreve/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/findreve/internal/filex"
	"github.com/go-redis/redis/v8"
)

const (
	BackendMemory  = "memory"
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
	BackendRedis   = "redis"
)

// Options selects and parameterizes a backend.
type Options struct {
	Backend        string
	DBPath         string
	KeyringService string
	RedisAddr      string
	RedisDB        int
	RedisPrefix    string
	// SecretKey enables SealedStore when non-empty.
	SecretKey string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the configured store. The returned Closer releases the
// database or redis connection and is never nil on success.
func Open(ctx context.Context, opts Options) (Store, io.Closer, error) {
	var (
		store  Store
		closer io.Closer = nopCloser{}
	)

	switch strings.ToLower(opts.Backend) {
	case BackendMemory:
		store = NewMemoryStore("")

	case BackendSQLite, "":
		path, err := filex.EnsureParentDir(opts.DBPath)
		if err != nil {
			return nil, nil, err
		}
		db, err := metadata.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		store, closer = NewMetadataStore(db), db

	case BackendKeyring:
		store = NewKeyringStore(opts.KeyringService)

	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: opts.RedisAddr, DB: opts.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", opts.RedisAddr, err)
		}
		store, closer = NewRedisStore(rdb, opts.RedisPrefix), rdb

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}

	if opts.SecretKey != "" {
		store = NewSealedStore(store, []byte(opts.SecretKey))
	}
	return store, closer, nil
}
