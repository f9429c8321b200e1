// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/pkg/notification"
)

// CartHandler handles cart endpoints. Reads reconcile the cart against
// the catalog first, so deleted products disappear from the response
// and from the persisted cart in the same call.
type CartHandler struct {
	cart            *cart.Store
	catalog         *catalog.Service
	calc            *pricing.Calculator
	admin           *admin.Service
	defaultShipping decimal.Decimal
	notifier        notification.Notifier
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(
	cartStore *cart.Store,
	catalogService *catalog.Service,
	calc *pricing.Calculator,
	adminService *admin.Service,
	defaultShipping decimal.Decimal,
	notifier notification.Notifier,
) *CartHandler {
	return &CartHandler{
		cart:            cartStore,
		catalog:         catalogService,
		calc:            calc,
		admin:           adminService,
		defaultShipping: defaultShipping,
		notifier:        notifier,
	}
}

type cartItemView struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Display   string          `json:"display_line_total"`
}

type cartView struct {
	Items     []cartItemView `json:"items"`
	ItemCount int            `json:"item_count"`
	Totals    pricing.Totals `json:"totals"`
	Display   gin.H          `json:"display"`
}

func (h *CartHandler) view() cartView {
	lines := h.cart.Lines()
	cur := displayCurrency(h.admin)

	items := make([]cartItemView, 0, len(lines))
	count := 0
	for _, line := range lines {
		product, err := h.catalog.GetProductByID(line.ProductID)
		if err != nil {
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		items = append(items, cartItemView{
			ProductID: line.ProductID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
			Display:   cur.Format(lineTotal),
		})
		count += line.Quantity
	}

	totals := h.calc.Compute(lines, h.catalog, h.defaultShipping)
	return cartView{
		Items:     items,
		ItemCount: count,
		Totals:    totals,
		Display: gin.H{
			"subtotal": cur.Format(totals.Subtotal),
			"shipping": cur.Format(totals.Shipping),
			"tax":      cur.Format(totals.Tax),
			"total":    cur.Format(totals.Total),
		},
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	if err := h.cart.Reconcile(h.catalog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.view(),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	product, err := h.catalog.GetProductByID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.cart.Add(req.ProductID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	h.notifier.Notify(product.Name+" added to cart", notification.SeveritySuccess)
	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.view(),
	})
}

// UpdateCartItem handles PUT /cart/items/:id. A quantity below 1
// removes the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		// Unparseable quantity: report and let the client re-render
		// from the persisted state, which is unchanged.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	if err := h.cart.SetQuantity(c.Param("id"), *req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    h.view(),
	})
}

// RemoveCartItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	if err := h.cart.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	h.notifier.Notify("Item removed from cart", notification.SeverityInfo)
	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed successfully",
		"data":    h.view(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cart.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    h.view(),
	})
}
