package credstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/findreve/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/findreve/internal/common"
	"github.com/dmitrijs2005/findreve/internal/dbx"
)

var (
	_ Store       = (*MetadataStore)(nil)
	_ Timestamped = (*MetadataStore)(nil)
)

// MetadataStore keeps the token in the metadata table of the local database,
// next to the time it was saved.
type MetadataStore struct {
	db *sql.DB
}

// NewMetadataStore expects a migrated database (see metadata.Open).
func NewMetadataStore(db *sql.DB) *MetadataStore {
	return &MetadataStore{db: db}
}

func (s *MetadataStore) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

func (s *MetadataStore) Get(ctx context.Context) (string, error) {
	v, err := s.repo().Get(ctx, common.AccessTokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *MetadataStore) Set(ctx context.Context, token string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.AccessTokenSavedAtKey, []byte(now))
	})
}

func (s *MetadataStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.AccessTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.AccessTokenSavedAtKey)
	})
}

// SavedAt reports when Set last ran. ok is false when nothing is stored.
func (s *MetadataStore) SavedAt(ctx context.Context) (time.Time, bool, error) {
	v, err := s.repo().Get(ctx, common.AccessTokenSavedAtKey)
	if err != nil || v == nil {
		return time.Time{}, false, err
	}
	ts, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", common.AccessTokenSavedAtKey, err)
	}
	return ts, true, nil
}
