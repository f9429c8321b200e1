// internal/pkg/currency/currency.go
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is a display currency with its fixed conversion rate from
// the canonical USD amounts. Conversion is presentation only; stored
// prices and computed totals never change currency.
type Currency struct {
	Code   string
	Symbol string
	Rate   decimal.Decimal
}

var currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Rate: decimal.NewFromInt(1)},
	"PKR": {Code: "PKR", Symbol: "₨", Rate: decimal.NewFromInt(278)},
}

// Lookup returns the currency for a code.
func Lookup(code string) (Currency, error) {
	c, ok := currencies[code]
	if !ok {
		return Currency{}, fmt.Errorf("unknown currency %q", code)
	}
	return c, nil
}

// Codes lists the supported currency codes.
func Codes() []string {
	return []string{"USD", "PKR"}
}

// Convert converts a canonical USD amount into this currency, rounded
// to two decimal places.
func (c Currency) Convert(usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(c.Rate).Round(2)
}

// Format renders a canonical USD amount for display in this currency,
// symbol first, two decimal places.
func (c Currency) Format(usd decimal.Decimal) string {
	return c.Symbol + c.Convert(usd).StringFixed(2)
}
