// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/notification"
)

// Services bundles the wired domain services the routes dispatch to.
type Services struct {
	Catalog         *catalog.Service
	Cart            *cart.Store
	Calculator      *pricing.Calculator
	Materializer    *order.Materializer
	Admin           *admin.Service
	Notifier        notification.Notifier
	DefaultShipping decimal.Decimal
}

// SetupRoutes wires every endpoint under the given group.
func SetupRoutes(rg *gin.RouterGroup, svc *Services) {
	setupCatalogRoutes(rg, svc)
	setupCartRoutes(rg, svc)
	setupCheckoutRoutes(rg, svc)
	setupAdminRoutes(rg, svc)
}

func setupCatalogRoutes(rg *gin.RouterGroup, svc *Services) {
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog, svc.Admin)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.ListProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}
	rg.GET("/categories", catalogHandler.ListCategories)
}

func setupCartRoutes(rg *gin.RouterGroup, svc *Services) {
	cartHandler := handlers.NewCartHandler(
		svc.Cart, svc.Catalog, svc.Calculator, svc.Admin, svc.DefaultShipping, svc.Notifier)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveCartItem)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, svc *Services) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Materializer)

	rg.POST("/checkout", checkoutHandler.PlaceOrder)
	rg.GET("/orders/last", checkoutHandler.LastOrder)
}

func setupAdminRoutes(rg *gin.RouterGroup, svc *Services) {
	adminHandler := handlers.NewAdminHandler(svc.Admin, svc.Catalog)

	adminGroup := rg.Group("/admin")
	{
		adminGroup.POST("/login", adminHandler.Login)

		protected := adminGroup.Group("")
		protected.Use(middleware.AdminAuth(svc.Admin))
		{
			protected.POST("/logout", adminHandler.Logout)
			protected.POST("/password", adminHandler.ChangePassword)
			protected.GET("/stats", adminHandler.Stats)

			protected.POST("/products", adminHandler.CreateProduct)
			protected.PUT("/products/:id", adminHandler.UpdateProduct)
			protected.DELETE("/products/:id", adminHandler.DeleteProduct)

			protected.POST("/categories", adminHandler.CreateCategory)
			protected.DELETE("/categories/:id", adminHandler.DeleteCategory)

			protected.GET("/settings", adminHandler.GetSettings)
			protected.PUT("/settings", adminHandler.UpdateSettings)

			protected.GET("/backup", adminHandler.ExportBackup)
			protected.POST("/backup", adminHandler.RestoreBackup)
			protected.DELETE("/data", adminHandler.ClearData)
		}
	}
}
