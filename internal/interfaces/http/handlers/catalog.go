// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/pkg/currency"
)

// CatalogHandler serves the public product listings.
type CatalogHandler struct {
	catalog *catalog.Service
	admin   *admin.Service
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *catalog.Service, adminService *admin.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService, admin: adminService}
}

// displayCurrency resolves the store's configured display currency,
// falling back to USD when the saved code is unusable.
func displayCurrency(adminService *admin.Service) currency.Currency {
	settings, err := adminService.Settings()
	if err == nil {
		if c, err := currency.Lookup(settings.Currency); err == nil {
			return c
		}
	}
	usd, _ := currency.Lookup("USD")
	return usd
}

type productView struct {
	catalog.Product
	DisplayPrice string `json:"display_price"`
}

func toProductViews(products []catalog.Product, cur currency.Currency) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{Product: p, DisplayPrice: cur.Format(p.Price)})
	}
	return views
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(catalog.ListOptions{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    toProductViews(products, displayCurrency(h.admin)),
	})
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProductByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}

	cur := displayCurrency(h.admin)
	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    productView{Product: *product, DisplayPrice: cur.Format(product.Price)},
	})
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}
