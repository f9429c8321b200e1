// internal/domain/pricing/totals_test.go
package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/pricing"
)

type stubCatalog map[string]decimal.Decimal

func (s stubCatalog) GetProductByID(id string) (*catalog.Product, error) {
	price, ok := s[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &catalog.Product{ID: id, Name: "Product " + id, Price: price}, nil
}

func TestComputeTotalsIdentity(t *testing.T) {
	cat := stubCatalog{
		"p1": decimal.RequireFromString("19.99"),
		"p2": decimal.RequireFromString("7.25"),
	}
	lines := []cart.Line{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 1},
	}
	shipping := decimal.RequireFromString("5.00")

	calc := pricing.NewCalculator(pricing.DefaultTaxRate)
	totals := calc.Compute(lines, cat, shipping)

	require.True(t, totals.Subtotal.Equal(decimal.RequireFromString("67.22")), "subtotal %s", totals.Subtotal)
	require.True(t, totals.Shipping.Equal(shipping))
	require.True(t, totals.Tax.Equal(decimal.RequireFromString("6.72")), "tax %s", totals.Tax)
	require.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Shipping).Add(totals.Tax)))
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultTaxRate)
	totals := calc.Compute(nil, stubCatalog{}, decimal.RequireFromString("15.00"))

	require.True(t, totals.Subtotal.IsZero())
	require.True(t, totals.Shipping.IsZero(), "shipping is not charged on an empty cart")
	require.True(t, totals.Tax.IsZero())
	require.True(t, totals.Total.IsZero())
}

func TestComputeTotalsSkipsUnresolvableLines(t *testing.T) {
	cat := stubCatalog{"p1": decimal.RequireFromString("10.00")}
	lines := []cart.Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}

	calc := pricing.NewCalculator(pricing.DefaultTaxRate)
	totals := calc.Compute(lines, cat, decimal.RequireFromString("5.00"))

	require.True(t, totals.Subtotal.Equal(decimal.RequireFromString("20.00")), "subtotal %s", totals.Subtotal)
	require.True(t, totals.Tax.Equal(decimal.RequireFromString("2.00")))
	require.True(t, totals.Total.Equal(decimal.RequireFromString("27.00")))
}

func TestComputeTotalsAllLinesUnresolvable(t *testing.T) {
	lines := []cart.Line{{ProductID: "gone", Quantity: 4}}

	calc := pricing.NewCalculator(pricing.DefaultTaxRate)
	totals := calc.Compute(lines, stubCatalog{}, decimal.RequireFromString("5.00"))

	require.True(t, totals.Subtotal.IsZero())
	require.True(t, totals.Shipping.IsZero())
	require.True(t, totals.Tax.IsZero())
	require.True(t, totals.Total.IsZero())
}
