package credential

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/99designs/keyring"

	"github.com/nhle/project-dashboard/internal/store"
)

// Config selects where the keyring keeps its entries.
type Config struct {
	// ServiceName groups entries in the OS keychain.
	ServiceName string

	// FileDir is used by the encrypted-file fallback backend.
	FileDir string

	// FilePassword unlocks the file backend. Empty uses a fixed key.
	FilePassword string

	// Backends overrides the allowed backends, mostly for tests.
	Backends []keyring.BackendType
}

// Ring is a store.Backend that files every value as a keyring item.
type Ring struct {
	ring keyring.Keyring
}

// Open returns a Ring over the first usable keyring backend.
func Open(cfg Config) (*Ring, error) {
	backends := cfg.Backends
	if len(backends) == 0 {
		backends = []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}
	password := cfg.FilePassword
	if password == "" {
		password = cfg.ServiceName + "-file-key"
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:              cfg.ServiceName,
		AllowedBackends:          backends,
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(password),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Ring{ring: ring}, nil
}

// New wraps an already opened keyring.
func New(ring keyring.Keyring) *Ring {
	return &Ring{ring: ring}
}

// Read retrieves the value filed under key.
func (r *Ring) Read(_ context.Context, key string) ([]byte, error) {
	item, err := r.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting credential %q: %w", key, err)
	}
	return item.Data, nil
}

// Write files value under key, replacing any previous entry.
func (r *Ring) Write(_ context.Context, key string, value []byte) error {
	err := r.ring.Set(keyring.Item{
		Key:   key,
		Data:  value,
		Label: key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing a missing entry is not an error.
func (r *Ring) Delete(_ context.Context, key string) error {
	err := r.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}
