// internal/domain/admin/service_test.go
package admin_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
	"github.com/your-org/storefront/internal/pkg/auth"
)

func newService(t *testing.T) (*admin.Service, kv.Store) {
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
	require.NoError(t, svc.SeedCredentials("admin", "admin123"))
	return svc, store
}

func TestSeedCredentialsIsIdempotent(t *testing.T) {
	svc, _ := newService(t)

	token, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// A second seed must not overwrite a changed password.
	require.NoError(t, svc.ChangePassword("admin123", "s3cret!"))
	require.NoError(t, svc.SeedCredentials("admin", "admin123"))

	_, err = svc.Login("admin", "admin123")
	require.ErrorIs(t, err, admin.ErrInvalidCredentials)
	_, err = svc.Login("admin", "s3cret!")
	require.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login("admin", "wrong")
	require.ErrorIs(t, err, admin.ErrInvalidCredentials)
	_, err = svc.Login("root", "admin123")
	require.ErrorIs(t, err, admin.ErrInvalidCredentials)
}

func TestAuthenticateRequiresLiveSession(t *testing.T) {
	svc, _ := newService(t)

	token, err := svc.Login("admin", "admin123")
	require.NoError(t, err)

	claims, err := svc.Authenticate(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)

	require.NoError(t, svc.Logout())
	_, err = svc.Authenticate(token)
	require.ErrorIs(t, err, admin.ErrNotAuthenticated)

	require.NoError(t, svc.Logout())
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Authenticate("not-a-token")
	require.ErrorIs(t, err, admin.ErrNotAuthenticated)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, _ := newService(t)

	err := svc.ChangePassword("wrong", "newpass1")
	require.ErrorIs(t, err, admin.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword("admin123", "newpass1"))
	_, err = svc.Login("admin", "newpass1")
	require.NoError(t, err)
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	svc, _ := newService(t)

	settings, err := svc.Settings()
	require.NoError(t, err)
	require.Equal(t, admin.DefaultSettings(), settings)

	settings.StoreName = "Corner Shop"
	settings.Currency = "PKR"
	require.NoError(t, svc.UpdateSettings(settings))

	loaded, err := svc.Settings()
	require.NoError(t, err)
	require.Equal(t, "Corner Shop", loaded.StoreName)
	require.Equal(t, "PKR", loaded.Currency)
}
