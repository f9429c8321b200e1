// internal/domain/pricing/totals.go
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// DefaultTaxRate is the storefront's fixed 10% tax rate.
var DefaultTaxRate = decimal.RequireFromString("0.10")

// Totals is the derived money breakdown of a cart. All fields are
// rounded to two decimal places; the invariant
// Total == Subtotal + Shipping + Tax always holds.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Catalog is the read-only price lookup the calculator needs.
// Satisfied by *catalog.Service.
type Catalog interface {
	GetProductByID(id string) (*catalog.Product, error)
}

// Calculator derives totals from cart lines. It is a pure function of
// its inputs; nothing here reads or writes storage.
type Calculator struct {
	taxRate decimal.Decimal
}

// NewCalculator creates a calculator with the given tax rate fraction.
func NewCalculator(taxRate decimal.Decimal) *Calculator {
	return &Calculator{taxRate: taxRate}
}

// Compute sums resolvable lines at their current catalog price, applies
// the tax rate to the unrounded subtotal, and adds the shipping cost.
// Lines whose product no longer resolves contribute nothing, matching
// cart reconciliation. A cart with no resolvable lines yields all-zero
// totals, shipping included.
func (c *Calculator) Compute(lines []cart.Line, cat Catalog, shippingCost decimal.Decimal) Totals {
	sum := decimal.Zero
	resolvable := 0
	for _, line := range lines {
		product, err := cat.GetProductByID(line.ProductID)
		if err != nil {
			continue
		}
		resolvable++
		sum = sum.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if resolvable == 0 {
		zero := decimal.Zero.Round(2)
		return Totals{Subtotal: zero, Shipping: zero, Tax: zero, Total: zero}
	}

	subtotal := sum.Round(2)
	shipping := shippingCost.Round(2)
	tax := sum.Mul(c.taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
