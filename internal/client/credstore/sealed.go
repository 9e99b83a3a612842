package credstore

import (
	"context"
	"time"

	"github.com/dmitrijs2005/findreve/internal/cryptox"
)

var (
	_ Store       = (*SealedStore)(nil)
	_ Timestamped = (*SealedStore)(nil)
)

// SealedStore encrypts the token before handing it to the inner store.
type SealedStore struct {
	inner  Store
	secret []byte
}

func NewSealedStore(inner Store, secret []byte) *SealedStore {
	return &SealedStore{inner: inner, secret: secret}
}

func (s *SealedStore) Get(ctx context.Context) (string, error) {
	sealed, err := s.inner.Get(ctx)
	if err != nil || sealed == "" {
		return "", err
	}
	token, err := cryptox.Open(sealed, s.secret)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

func (s *SealedStore) Set(ctx context.Context, token string) error {
	sealed, err := cryptox.Seal([]byte(token), s.secret)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, sealed)
}

func (s *SealedStore) Clear(ctx context.Context) error {
	return s.inner.Clear(ctx)
}

// SavedAt reports the inner store's timestamp, if it keeps one.
func (s *SealedStore) SavedAt(ctx context.Context) (time.Time, bool, error) {
	ts, ok := s.inner.(Timestamped)
	if !ok {
		return time.Time{}, false, nil
	}
	return ts.SavedAt(ctx)
}
