// internal/infrastructure/storage/kv/pebble.go
package kv

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// PebbleStore implements Store on an embedded PebbleDB. This is the
// persisted storage of the storefront: the cart key survives restarts
// here the way it survived page loads in localStorage.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens (or creates) a Pebble database under dir.
func NewPebbleStore(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Get retrieves a value by key.
func (s *PebbleStore) Get(key string) ([]byte, error) {
	value, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("pebble get %q: %w", key, err)
	}
	out := make([]byte, len(value))
	copy(out, value)
	if err := closer.Close(); err != nil {
		return nil, fmt.Errorf("pebble get %q: %w", key, err)
	}
	return out, nil
}

// Set writes value under key synchronously.
func (s *PebbleStore) Set(key string, value []byte) error {
	if err := s.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting an absent key is a no-op.
func (s *PebbleStore) Delete(key string) error {
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("pebble delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}
