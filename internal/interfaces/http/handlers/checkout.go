// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/order"
)

// CheckoutHandler handles checkout submission and the order
// confirmation page.
type CheckoutHandler struct {
	materializer *order.Materializer
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(materializer *order.Materializer) *CheckoutHandler {
	return &CheckoutHandler{materializer: materializer}
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	placed, err := h.materializer.Place(&form)
	if err != nil {
		var fieldErr *checkout.FieldError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		case errors.As(err, &fieldErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": fieldErr.Message,
				"field": fieldErr.Field,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// LastOrder handles GET /orders/last
func (h *CheckoutHandler) LastOrder(c *gin.Context) {
	placed, err := h.materializer.Last()
	if err != nil {
		if errors.Is(err, order.ErrNoOrder) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No order found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    placed,
	})
}
