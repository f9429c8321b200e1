// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
	"github.com/your-org/storefront/internal/pkg/notification"
)

// ErrNoOrder is returned when the session holds no completed order.
var ErrNoOrder = errors.New("order: no order in session")

// Catalog is the product lookup the materializer needs for line
// snapshots. Satisfied by *catalog.Service.
type Catalog interface {
	GetProductByID(id string) (*catalog.Product, error)
}

// Materializer turns an accepted checkout submission plus the current
// cart into a session-scoped order. The pipeline is all or nothing: the
// cart is cleared only after the order is safely in the session store,
// and a rejected submission leaves the cart untouched.
type Materializer struct {
	cart      *cart.Store
	catalog   Catalog
	calc      *pricing.Calculator
	validator *checkout.Validator
	session   kv.Store
	notifier  notification.Notifier

	// Now stamps order ids and creation times. Tests pin it.
	Now func() time.Time
}

// NewMaterializer wires the checkout pipeline around the session store.
func NewMaterializer(
	cartStore *cart.Store,
	cat Catalog,
	calc *pricing.Calculator,
	v *checkout.Validator,
	session kv.Store,
	notifier notification.Notifier,
) *Materializer {
	return &Materializer{
		cart:      cartStore,
		catalog:   cat,
		calc:      calc,
		validator: v,
		session:   session,
		notifier:  notifier,
		Now:       time.Now,
	}
}

// Place validates the submission against the current cart and, when
// accepted, materializes the order, stores it in the session, and
// clears the cart. Any failure before the session write leaves the
// cart exactly as it was.
func (m *Materializer) Place(form *checkout.Form) (*Order, error) {
	if err := m.cart.Reconcile(m.catalog); err != nil {
		return nil, err
	}
	lines := m.cart.Lines()

	data, err := m.validator.Validate(form, len(lines))
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		product, err := m.catalog.GetProductByID(line.ProductID)
		if err != nil {
			continue
		}
		items = append(items, Item{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price.Round(2),
			Quantity:  line.Quantity,
		})
	}
	if len(items) == 0 {
		return nil, checkout.ErrEmptyCart
	}

	totals := m.calc.Compute(lines, m.catalog, data.ShippingCost)
	now := m.Now()
	ord := &Order{
		ID:           fmt.Sprintf("ORD-%d", now.UnixMilli()),
		CreatedAt:    now,
		Customer:     data.Shipping,
		Items:        items,
		Subtotal:     totals.Subtotal,
		ShippingCost: totals.Shipping,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Payment:      data.Payment,
		CardLast4:    data.CardLast4,
	}

	if err := kv.SetJSON(m.session, SessionKey, ord); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	if err := m.cart.Clear(); err != nil {
		return nil, fmt.Errorf("order %s stored but cart not cleared: %w", ord.ID, err)
	}

	m.notifier.Notify(fmt.Sprintf("Order %s placed", ord.ID), notification.SeveritySuccess)
	return ord, nil
}

// Last returns the order stored in the current session, or ErrNoOrder
// when none has been placed.
func (m *Materializer) Last() (*Order, error) {
	var ord Order
	if err := kv.GetJSON(m.session, SessionKey, &ord); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNoOrder
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &ord, nil
}
