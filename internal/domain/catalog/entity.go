// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a storefront product. Prices are canonical USD
// decimals; display conversion is a presentation concern.
type Product struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku,omitempty"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Stock       int             `json:"stock"`
	Discount    int             `json:"discount"` // percentage, display only
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsInStock reports whether the product has stock left.
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// StockValue returns price multiplied by remaining stock.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// Category represents a product category label
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarizes the catalog for the admin dashboard
type Stats struct {
	ProductCount int             `json:"product_count"`
	TotalValue   decimal.Decimal `json:"total_value"`   // Σ price × stock
	AveragePrice decimal.Decimal `json:"average_price"` // over products, 2dp
}
