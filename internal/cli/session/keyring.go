package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "recipes-cli"

	tokenKey   = "auth-token"
	isAdminKey = "is-admin"
)

// KeyringStore keeps the session in the OS keychain/credential manager, scoped to one
// backend URL
type KeyringStore struct {
	apiURL string
}

// NewKeyringStore returns a store for the given backend
func NewKeyringStore(apiURL string) *KeyringStore {
	return &KeyringStore{apiURL: apiURL}
}

// getKeyringKey returns a unique key for storing a value per backend
func (k *KeyringStore) getKeyringKey(name string) string {
	return fmt.Sprintf("%s-%s", name, k.apiURL)
}

func (k *KeyringStore) get(name string) (string, error) {
	value, err := keyring.Get(service, k.getKeyringKey(name))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load %s: %w", name, err)
	}
	return value, nil
}

func (k *KeyringStore) delete(name string) error {
	if err := keyring.Delete(service, k.getKeyringKey(name)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

// Load reads the session. Missing entries yield an empty session.
func (k *KeyringStore) Load() (Session, error) {
	token, err := k.get(tokenKey)
	if err != nil {
		return Session{}, err
	}

	isAdmin, err := k.get(isAdminKey)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, IsAdmin: isAdmin == "true"}, nil
}

// Save persists the session. The admin flag is stored only when set.
func (k *KeyringStore) Save(s Session) error {
	if err := keyring.Set(service, k.getKeyringKey(tokenKey), s.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	if !s.IsAdmin {
		return k.delete(isAdminKey)
	}
	if err := keyring.Set(service, k.getKeyringKey(isAdminKey), "true"); err != nil {
		return fmt.Errorf("failed to save admin flag: %w", err)
	}
	return nil
}

// Clear removes the token and the admin flag
func (k *KeyringStore) Clear() error {
	return errors.Join(k.delete(tokenKey), k.delete(isAdminKey))
}
