// internal/domain/cart/entity.go
package cart

// Line is one product-quantity pairing in the cart. The persisted JSON
// shape (`{id, quantity}`) is the fixed contract of the "cart" key.
type Line struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// Key is the persisted-storage key the cart store owns. No other
// component writes it.
const Key = "cart"
