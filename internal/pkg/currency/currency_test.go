// internal/pkg/currency/currency_test.go
package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/pkg/currency"
)

func TestFormat(t *testing.T) {
	usd, err := currency.Lookup("USD")
	require.NoError(t, err)
	pkr, err := currency.Lookup("PKR")
	require.NoError(t, err)

	price := decimal.RequireFromString("25.00")
	require.Equal(t, "$25.00", usd.Format(price))
	require.Equal(t, "₨6950.00", pkr.Format(price))

	require.Equal(t, "$19.99", usd.Format(decimal.RequireFromString("19.99")))
	require.Equal(t, "₨5557.22", pkr.Format(decimal.RequireFromString("19.99")))
}

func TestLookupUnknownCode(t *testing.T) {
	_, err := currency.Lookup("EUR")
	require.Error(t, err)
}

func TestConvertDoesNotMutateCanonicalAmount(t *testing.T) {
	pkr, err := currency.Lookup("PKR")
	require.NoError(t, err)

	price := decimal.RequireFromString("10.00")
	_ = pkr.Convert(price)
	require.True(t, price.Equal(decimal.RequireFromString("10.00")))
}
