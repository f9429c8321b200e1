// internal/infrastructure/storage/kv/store.go
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key is absent from the store.
var ErrNotFound = errors.New("kv: key not found")

// Store abstracts the key-value backend. The persisted store (Pebble or
// Redis) plays the role the browser's localStorage played in the original
// storefront; the in-memory store plays the role of sessionStorage.
//
// Writes are synchronous: when Set returns nil the value is durable at
// the backend's durability level. Values are opaque byte slices; callers
// that need structure use the JSON helpers below.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// GetJSON reads key and unmarshals it into dest. A missing key returns
// ErrNotFound; a corrupt payload returns the unmarshal error so callers
// can apply their own fail-open policy.
func GetJSON(s Store, key string, dest interface{}) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("kv: decode %q: %w", key, err)
	}
	return nil
}

// SetJSON marshals value and writes it under key in full.
func SetJSON(s Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv: encode %q: %w", key, err)
	}
	return s.Set(key, data)
}
