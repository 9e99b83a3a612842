package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/findreve/internal/common"
	"github.com/zalando/go-keyring"
)

var _ Store = (*KeyringStore)(nil)

// KeyringStore keeps the token in the OS keyring as the secret of
// (service, "access_token").
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

func (s *KeyringStore) Get(_ context.Context) (string, error) {
	token, err := keyring.Get(s.service, common.AccessTokenKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring get %s: %w", s.service, err)
	}
	return token, nil
}

func (s *KeyringStore) Set(_ context.Context, token string) error {
	if err := keyring.Set(s.service, common.AccessTokenKey, token); err != nil {
		return fmt.Errorf("keyring set %s: %w", s.service, err)
	}
	return nil
}

func (s *KeyringStore) Clear(_ context.Context) error {
	err := keyring.Delete(s.service, common.AccessTokenKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s: %w", s.service, err)
	}
	return nil
}
