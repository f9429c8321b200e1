// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/your-org/storefront/internal/domain/checkout"
)

// SessionKey is the session-store key holding the most recent order.
const SessionKey = "lastOrder"

// Item is one cart line frozen at the prices in effect when the order
// was placed. Later catalog edits never alter a materialized order.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Order is the session-scoped record of a completed checkout. Card
// details never appear here; CardLast4 is the only trace of a card
// payment and is empty for cash on delivery.
type Order struct {
	ID           string                 `json:"id"`
	CreatedAt    time.Time              `json:"created_at"`
	Customer     checkout.ShippingInfo  `json:"customer"`
	Items        []Item                 `json:"items"`
	Subtotal     decimal.Decimal        `json:"subtotal"`
	ShippingCost decimal.Decimal        `json:"shipping_cost"`
	Tax          decimal.Decimal        `json:"tax"`
	Total        decimal.Decimal        `json:"total"`
	Payment      checkout.PaymentMethod `json:"payment"`
	CardLast4    string                 `json:"card_last4,omitempty"`
}

// ItemCount returns the total unit count across all items.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
