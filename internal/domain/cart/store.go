// internal/domain/cart/store.go
package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
)

// ErrInvalidInput is returned when a mutator is given an unusable
// argument; the prior cart state is always left intact.
var ErrInvalidInput = errors.New("cart: invalid input")

// Catalog is the read-only product lookup the cart needs for
// reconciliation. Satisfied by *catalog.Service.
type Catalog interface {
	GetProductByID(id string) (*catalog.Product, error)
}

// Store owns the canonical cart line list. Every mutator rewrites the
// full list to persisted storage synchronously, so the persisted value
// is always a complete snapshot (last write wins across processes,
// with no merging).
type Store struct {
	store kv.Store
}

// NewStore creates a cart store over the persisted key-value store.
func NewStore(store kv.Store) *Store {
	return &Store{store: store}
}

// Lines loads the current cart. A missing key, unreadable payload, or
// any structural mismatch (blank ids, quantities below 1, duplicate
// product ids) yields the empty cart: persisted cart data fails open,
// never halfway.
func (s *Store) Lines() []Line {
	var lines []Line
	if err := kv.GetJSON(s.store, Key, &lines); err != nil {
		return []Line{}
	}
	if !wellFormed(lines) {
		return []Line{}
	}
	return lines
}

func wellFormed(lines []Line) bool {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line.ProductID) == "" || line.Quantity < 1 {
			return false
		}
		if _, dup := seen[line.ProductID]; dup {
			return false
		}
		seen[line.ProductID] = struct{}{}
	}
	return true
}

// Add increments the quantity of an existing line by one, or appends a
// new line with quantity 1, and persists immediately.
func (s *Store) Add(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return fmt.Errorf("product id is required: %w", ErrInvalidInput)
	}

	lines := s.Lines()
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity++
			return s.persist(lines)
		}
	}
	lines = append(lines, Line{ProductID: productID, Quantity: 1})
	return s.persist(lines)
}

// SetQuantity sets the quantity of an existing line. A quantity below 1
// removes the line, same as Remove. Setting the quantity of an absent
// product id leaves the cart unchanged.
func (s *Store) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return s.Remove(productID)
	}

	lines := s.Lines()
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return s.persist(lines)
		}
	}
	return nil
}

// Remove deletes the matching line if present; removing an absent
// product id is a no-op.
func (s *Store) Remove(productID string) error {
	lines := s.Lines()
	remaining := make([]Line, 0, len(lines))
	found := false
	for _, line := range lines {
		if line.ProductID == productID {
			found = true
			continue
		}
		remaining = append(remaining, line)
	}
	if !found {
		return nil
	}
	return s.persist(remaining)
}

// Reconcile drops any line whose product no longer resolves in the
// catalog (deleted by the admin after being carted). It persists only
// when something was dropped. Run before rendering or computing totals.
func (s *Store) Reconcile(cat Catalog) error {
	lines := s.Lines()
	remaining := make([]Line, 0, len(lines))
	for _, line := range lines {
		if _, err := cat.GetProductByID(line.ProductID); err != nil {
			continue
		}
		remaining = append(remaining, line)
	}
	if len(remaining) == len(lines) {
		return nil
	}
	return s.persist(remaining)
}

// Clear empties all lines and persists the empty state. Called by the
// order materializer after a successful submission; clearing an
// already-empty cart is harmless.
func (s *Store) Clear() error {
	return s.persist([]Line{})
}

// TotalItemCount returns the sum of all line quantities.
func (s *Store) TotalItemCount() int {
	total := 0
	for _, line := range s.Lines() {
		total += line.Quantity
	}
	return total
}

func (s *Store) persist(lines []Line) error {
	if err := kv.SetJSON(s.store, Key, lines); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
