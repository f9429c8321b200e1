// internal/infrastructure/storage/kv/store_test.go
package kv_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
)

func openStores(t *testing.T) map[string]kv.Store {
	t.Helper()

	pebbleStore, err := kv.NewPebbleStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pebbleStore.Close() })

	srv := miniredis.RunT(t)
	redisStore, err := kv.NewRedisStore(kv.RedisOptions{Addr: srv.Addr(), KeyPrefix: "storefront"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisStore.Close() })

	return map[string]kv.Store{
		"memory": kv.NewMemoryStore(),
		"pebble": pebbleStore,
		"redis":  redisStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get("cart")
			require.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, store.Set("cart", []byte(`[{"id":"p1","quantity":2}]`)))
			value, err := store.Get("cart")
			require.NoError(t, err)
			require.JSONEq(t, `[{"id":"p1","quantity":2}]`, string(value))

			// Full rewrite replaces the previous value.
			require.NoError(t, store.Set("cart", []byte(`[]`)))
			value, err = store.Get("cart")
			require.NoError(t, err)
			require.Equal(t, `[]`, string(value))

			require.NoError(t, store.Delete("cart"))
			_, err = store.Get("cart")
			require.ErrorIs(t, err, kv.ErrNotFound)

			// Deleting an absent key is a no-op.
			require.NoError(t, store.Delete("cart"))
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	store := kv.NewMemoryStore()

	type line struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}

	require.NoError(t, kv.SetJSON(store, "cart", []line{{ID: "p1", Quantity: 3}}))

	var lines []line
	require.NoError(t, kv.GetJSON(store, "cart", &lines))
	require.Equal(t, []line{{ID: "p1", Quantity: 3}}, lines)

	var missing []line
	err := kv.GetJSON(store, "nope", &missing)
	require.ErrorIs(t, err, kv.ErrNotFound)

	// Corrupt payloads surface a decode error so callers can fail open.
	require.NoError(t, store.Set("cart", []byte("{not json")))
	err = kv.GetJSON(store, "cart", &lines)
	require.Error(t, err)
	require.NotErrorIs(t, err, kv.ErrNotFound)
}
