// internal/domain/admin/service.go
package admin

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const (
	// CredentialsKey holds the admin credentials in the persisted store.
	CredentialsKey = "adminCredentials"
	// SettingsKey holds the store settings in the persisted store.
	SettingsKey = "storeSettings"
	// SessionKey holds the active admin session in the session store.
	SessionKey = "adminSession"
)

var (
	// ErrInvalidCredentials is returned on a failed login or a wrong
	// current password. The message never says which part was wrong.
	ErrInvalidCredentials = errors.New("admin: invalid credentials")
	// ErrNotAuthenticated is returned when no valid admin session exists.
	ErrNotAuthenticated = errors.New("admin: not authenticated")
)

// Settings are the storefront-wide options the admin can edit.
type Settings struct {
	StoreName string `json:"store_name"`
	Currency  string `json:"currency"`
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{StoreName: "Storefront", Currency: "USD"}
}

type credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type session struct {
	Token string `json:"token"`
}

// Service owns admin authentication and store settings. Credentials
// live in the persisted store as a bcrypt hash; the active session
// lives in the session store and vanishes with it.
type Service struct {
	store     kv.Store
	session   kv.Store
	passwords *auth.PasswordManager
	tokens    *auth.JWTManager
}

// NewService creates the admin service over the two stores.
func NewService(store, sessionStore kv.Store, passwords *auth.PasswordManager, tokens *auth.JWTManager) *Service {
	return &Service{
		store:     store,
		session:   sessionStore,
		passwords: passwords,
		tokens:    tokens,
	}
}

// SeedCredentials writes the default admin credentials if none exist
// yet. An already-provisioned store is left alone.
func (s *Service) SeedCredentials(username, password string) error {
	if _, err := s.store.Get(CredentialsKey); err == nil {
		return nil
	} else if !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("failed to read admin credentials: %w", err)
	}

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to seed admin credentials: %w", err)
	}
	creds := credentials{Username: username, PasswordHash: hash}
	if err := kv.SetJSON(s.store, CredentialsKey, creds); err != nil {
		return fmt.Errorf("failed to seed admin credentials: %w", err)
	}
	return nil
}

// Login checks the credentials and, on success, opens an admin session
// and returns its token. A failed login returns ErrInvalidCredentials
// without detail.
func (s *Service) Login(username, password string) (string, error) {
	var creds credentials
	if err := kv.GetJSON(s.store, CredentialsKey, &creds); err != nil {
		return "", ErrInvalidCredentials
	}
	if username != creds.Username {
		return "", ErrInvalidCredentials
	}
	if err := s.passwords.VerifyPassword(password, creds.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}
	if err := kv.SetJSON(s.session, SessionKey, session{Token: token}); err != nil {
		return "", fmt.Errorf("failed to store admin session: %w", err)
	}
	return token, nil
}

// Logout drops the active session. Logging out twice is harmless.
func (s *Service) Logout() error {
	if err := s.session.Delete(SessionKey); err != nil {
		return fmt.Errorf("failed to clear admin session: %w", err)
	}
	return nil
}

// Authenticate checks a presented token against both its signature and
// the live session record. A token that outlived its session, or a
// session replaced by a newer login, is rejected.
func (s *Service) Authenticate(token string) (*auth.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	var sess session
	if err := kv.GetJSON(s.session, SessionKey, &sess); err != nil {
		return nil, ErrNotAuthenticated
	}
	if sess.Token != token {
		return nil, ErrNotAuthenticated
	}
	return claims, nil
}

// ChangePassword replaces the admin password after verifying the
// current one.
func (s *Service) ChangePassword(current, updated string) error {
	var creds credentials
	if err := kv.GetJSON(s.store, CredentialsKey, &creds); err != nil {
		return ErrInvalidCredentials
	}
	if err := s.passwords.VerifyPassword(current, creds.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.passwords.HashPassword(updated)
	if err != nil {
		return err
	}
	creds.PasswordHash = hash
	if err := kv.SetJSON(s.store, CredentialsKey, creds); err != nil {
		return fmt.Errorf("failed to update admin credentials: %w", err)
	}
	return nil
}

// Settings loads the store settings, falling back to the defaults when
// none are saved.
func (s *Service) Settings() (Settings, error) {
	var settings Settings
	if err := kv.GetJSON(s.store, SettingsKey, &settings); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings persists new store settings.
func (s *Service) UpdateSettings(settings Settings) error {
	if settings.StoreName == "" {
		return fmt.Errorf("store name is required")
	}
	if settings.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if err := kv.SetJSON(s.store, SettingsKey, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
