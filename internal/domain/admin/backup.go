// internal/domain/admin/backup.go
package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
)

// ErrInvalidBackup rejects a restore payload that fails validation.
// Restore is all or nothing; a payload that fails anywhere writes
// nothing.
var ErrInvalidBackup = errors.New("admin: invalid backup payload")

// Backup is the portable snapshot of everything the admin manages.
type Backup struct {
	Products   []catalog.Product  `json:"products"`
	Categories []catalog.Category `json:"categories"`
	Settings   Settings           `json:"settings"`
	ExportedAt time.Time          `json:"exported_at"`
}

// Catalog is the catalog surface backup needs. Satisfied by
// *catalog.Service.
type Catalog interface {
	Products() ([]catalog.Product, error)
	Categories() ([]catalog.Category, error)
	ReplaceAll(products []catalog.Product, categories []catalog.Category) error
	Clear() error
}

// Export snapshots the catalog and settings into a Backup.
func (s *Service) Export(cat Catalog) (*Backup, error) {
	products, err := cat.Products()
	if err != nil {
		return nil, fmt.Errorf("failed to export products: %w", err)
	}
	categories, err := cat.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to export categories: %w", err)
	}
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	return &Backup{
		Products:   products,
		Categories: categories,
		Settings:   settings,
		ExportedAt: time.Now().UTC(),
	}, nil
}

// Restore replaces the catalog and settings with the backup payload.
// The whole payload is validated before anything is written; a single
// bad record rejects the entire restore and leaves current data intact.
func (s *Service) Restore(cat Catalog, raw []byte) error {
	var backup Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if err := validateBackup(&backup); err != nil {
		return err
	}

	if err := cat.ReplaceAll(backup.Products, backup.Categories); err != nil {
		return fmt.Errorf("failed to restore catalog: %w", err)
	}
	settings := backup.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	}
	return s.UpdateSettings(settings)
}

func validateBackup(backup *Backup) error {
	if backup.Products == nil || backup.Categories == nil {
		return fmt.Errorf("%w: products and categories are required", ErrInvalidBackup)
	}
	seenProducts := make(map[string]struct{}, len(backup.Products))
	for i, p := range backup.Products {
		switch {
		case strings.TrimSpace(p.ID) == "":
			return fmt.Errorf("%w: product %d has no id", ErrInvalidBackup, i)
		case strings.TrimSpace(p.Name) == "":
			return fmt.Errorf("%w: product %q has no name", ErrInvalidBackup, p.ID)
		case p.Price.IsNegative():
			return fmt.Errorf("%w: product %q has a negative price", ErrInvalidBackup, p.ID)
		case p.Stock < 0:
			return fmt.Errorf("%w: product %q has negative stock", ErrInvalidBackup, p.ID)
		}
		if _, dup := seenProducts[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %q", ErrInvalidBackup, p.ID)
		}
		seenProducts[p.ID] = struct{}{}
	}
	seenCategories := make(map[string]struct{}, len(backup.Categories))
	for i, c := range backup.Categories {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category %d is missing id or name", ErrInvalidBackup, i)
		}
		if _, dup := seenCategories[c.ID]; dup {
			return fmt.Errorf("%w: duplicate category id %q", ErrInvalidBackup, c.ID)
		}
		seenCategories[c.ID] = struct{}{}
	}
	return nil
}

// ClearData wipes the catalog and settings. Credentials survive so the
// admin is not locked out. Clearing an already-empty store is a no-op.
func (s *Service) ClearData(cat Catalog) error {
	if err := cat.Clear(); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	if err := s.store.Delete(SettingsKey); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}
