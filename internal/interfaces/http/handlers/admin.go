// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// AdminHandler handles the admin panel endpoints: authentication,
// product and category management, settings, and backup.
type AdminHandler struct {
	admin   *admin.Service
	catalog *catalog.Service
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService *admin.Service, catalogService *catalog.Service) *AdminHandler {
	return &AdminHandler{admin: adminService, catalog: catalogService}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	token, err := h.admin.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    gin.H{"token": token},
	})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.admin.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ChangePassword handles POST /admin/password
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.admin.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.catalog.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Stats retrieved successfully",
		"data":    stats,
	})
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req catalog.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	product, err := h.catalog.CreateProduct(&req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct handles PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req catalog.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, catalog.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Param("id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// CreateCategory handles POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	category, err := h.catalog.CreateCategory(req.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Category created successfully",
		"data":    category,
	})
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Param("id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// GetSettings handles GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.admin.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Settings retrieved successfully",
		"data":    settings,
	})
}

// UpdateSettings handles PUT /admin/settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var settings admin.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.admin.UpdateSettings(settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Settings updated successfully",
		"data":    settings,
	})
}

// ExportBackup handles GET /admin/backup
func (h *AdminHandler) ExportBackup(c *gin.Context) {
	backup, err := h.admin.Export(h.catalog)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export backup"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="storefront-backup.json"`)
	c.JSON(http.StatusOK, backup)
}

// RestoreBackup handles POST /admin/backup
func (h *AdminHandler) RestoreBackup(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read backup payload"})
		return
	}

	if err := h.admin.Restore(h.catalog, raw); err != nil {
		if errors.Is(err, admin.ErrInvalidBackup) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore backup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Backup restored successfully"})
}

// ClearData handles DELETE /admin/data
func (h *AdminHandler) ClearData(c *gin.Context) {
	if err := h.admin.ClearData(h.catalog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All data cleared"})
}
