// internal/domain/admin/backup_test.go
package admin_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
	"github.com/your-org/storefront/internal/pkg/auth"
)

func newBackupFixture(t *testing.T) (*admin.Service, *catalog.Service) {
	t.Helper()
	store := kv.NewMemoryStore()
	session := kv.NewMemoryStore()
	t.Cleanup(func() {
		store.Close()
		session.Close()
	})

	svc := admin.NewService(
		store,
		session,
		auth.NewPasswordManager(4),
		auth.NewJWTManager("test-secret-test-secret", "storefront-test", time.Hour),
	)
	cat := catalog.NewService(store)
	require.NoError(t, cat.SeedDefaults())
	return svc, cat
}

func TestExportRestoreRoundTrip(t *testing.T) {
	svc, cat := newBackupFixture(t)

	backup, err := svc.Export(cat)
	require.NoError(t, err)
	require.NotEmpty(t, backup.Products)
	require.NotEmpty(t, backup.Categories)

	raw, err := json.Marshal(backup)
	require.NoError(t, err)

	// Wipe everything, then bring it back.
	require.NoError(t, svc.ClearData(cat))
	products, err := cat.Products()
	require.NoError(t, err)
	require.Empty(t, products)

	require.NoError(t, svc.Restore(cat, raw))
	restored, err := cat.Products()
	require.NoError(t, err)
	require.Len(t, restored, len(backup.Products))
}

func TestRestoreRejectsInvalidPayloadWholesale(t *testing.T) {
	svc, cat := newBackupFixture(t)
	before, err := cat.Products()
	require.NoError(t, err)

	payloads := []string{
		`{"not json`,
		`{"categories":[]}`,
		`{"products":[{"id":"","name":"x","price":"1.00"}],"categories":[]}`,
		`{"products":[{"id":"p1","name":"","price":"1.00"}],"categories":[]}`,
		`{"products":[{"id":"p1","name":"x","price":"-1.00"}],"categories":[]}`,
		`{"products":[{"id":"p1","name":"x","price":"1.00"},{"id":"p1","name":"y","price":"2.00"}],"categories":[]}`,
		`{"products":[],"categories":[{"id":"","name":""}]}`,
	}
	for _, payload := range payloads {
		err := svc.Restore(cat, []byte(payload))
		require.ErrorIs(t, err, admin.ErrInvalidBackup, "payload %s", payload)
	}

	after, err := cat.Products()
	require.NoError(t, err)
	require.Equal(t, before, after, "a rejected restore must write nothing")
}

func TestClearDataIsIdempotentAndKeepsCredentials(t *testing.T) {
	svc, cat := newBackupFixture(t)
	require.NoError(t, svc.SeedCredentials("admin", "admin123"))

	require.NoError(t, svc.ClearData(cat))
	require.NoError(t, svc.ClearData(cat))

	settings, err := svc.Settings()
	require.NoError(t, err)
	require.Equal(t, admin.DefaultSettings(), settings)

	_, err = svc.Login("admin", "admin123")
	require.NoError(t, err)
}
