// internal/interfaces/http/handlers/handlers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/notification"
)

func newRouter(t *testing.T) (*gin.Engine, *catalog.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kv.NewMemoryStore()
	session := kv.NewMemoryStore()
	t.Cleanup(func() {
		store.Close()
		session.Close()
	})

	catalogService := catalog.NewService(store)
	require.NoError(t, catalogService.SeedDefaults())

	adminService := admin.NewService(
		store,
		session,
		auth.NewPasswordManager(4),
		auth.NewJWTManager("test-secret-test-secret", "storefront-test", time.Hour),
	)
	require.NoError(t, adminService.SeedCredentials("admin", "admin123"))

	cartStore := cart.NewStore(store)
	calculator := pricing.NewCalculator(pricing.DefaultTaxRate)
	materializer := order.NewMaterializer(
		cartStore,
		catalogService,
		calculator,
		checkout.NewValidator(),
		session,
		notification.NopNotifier{},
	)

	router := gin.New()
	routes.SetupRoutes(router.Group("/api/v1"), &routes.Services{
		Catalog:         catalogService,
		Cart:            cartStore,
		Calculator:      calculator,
		Materializer:    materializer,
		Admin:           adminService,
		Notifier:        notification.NopNotifier{},
		DefaultShipping: decimal.RequireFromString("5.00"),
	})
	return router, catalogService
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func firstProductID(t *testing.T, catalogService *catalog.Service) string {
	t.Helper()
	products, err := catalogService.Products()
	require.NoError(t, err)
	require.NotEmpty(t, products)
	return products[0].ID
}

func TestCartEndpoints(t *testing.T) {
	router, catalogService := newRouter(t)
	productID := firstProductID(t, catalogService)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", gin.H{"id": productID}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/cart/items/"+productID, gin.H{"quantity": 3}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		ItemCount int `json:"item_count"`
		Items     []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
	}
	decodeData(t, rec, &view)
	require.Equal(t, 3, view.ItemCount)
	require.Len(t, view.Items, 1)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/cart/items/"+productID, gin.H{"quantity": "three"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/"+productID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", nil, "")
	decodeData(t, rec, &view)
	require.Zero(t, view.ItemCount)
}

func TestAddUnknownProduct(t *testing.T) {
	router, _ := newRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", gin.H{"id": "ghost"}, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutFlow(t *testing.T) {
	router, catalogService := newRouter(t)
	productID := firstProductID(t, catalogService)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", gin.H{"id": productID}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	form := gin.H{
		"shipping": gin.H{
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"email":      "ada@example.com",
			"phone":      "+15551234567",
			"address":    "1 Analytical Way",
			"city":       "London",
			"state":      "LDN",
			"zip":        "E1 6AN",
		},
		"shipping_method": gin.H{"cost": "5.00"},
		"payment":         "cod",
		"terms_accepted":  true,
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout", form, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var placed struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &placed)
	require.NotEmpty(t, placed.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/orders/last", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Cart is empty now, so a second submission is rejected outright.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout", form, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutFieldErrorResponse(t *testing.T) {
	router, catalogService := newRouter(t)
	productID := firstProductID(t, catalogService)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", gin.H{"id": productID}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	form := gin.H{
		"shipping":        gin.H{"first_name": "Ada"},
		"shipping_method": gin.H{"cost": "5.00"},
		"payment":         "cod",
		"terms_accepted":  true,
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout", form, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "lname", body.Field)

	// The rejected submission left the cart alone.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", nil, "")
	var view struct {
		ItemCount int `json:"item_count"`
	}
	decodeData(t, rec, &view)
	require.Equal(t, 1, view.ItemCount)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/admin/stats", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/login",
		gin.H{"username": "admin", "password": "wrong"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/login",
		gin.H{"username": "admin", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &login)
	require.NotEmpty(t, login.Token)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/admin/stats", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/logout", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/admin/stats", nil, login.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminProductCRUD(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/login",
		gin.H{"username": "admin", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &login)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/products",
		gin.H{"name": "Wool Scarf", "category": "Accessories", "price": "19.99", "stock": 10}, login.Token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/admin/products/"+created.ID,
		gin.H{"price": "24.99"}, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/admin/products/"+created.ID, nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
