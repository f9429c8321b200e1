// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
)

// Storage keys owned by the catalog service. The original storefront
// spread products over three overlapping keys; here everything lives
// under a single consolidated key.
const (
	ProductsKey   = "products"
	CategoriesKey = "categories"
)

// ErrNotFound indicates the requested product or category does not exist.
var ErrNotFound = errors.New("catalog: not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("catalog: invalid input")

// Service owns product and category storage. It is the only writer of
// the catalog keys; the cart/checkout pipeline consumes it read-only
// through GetProductByID.
type Service struct {
	store kv.Store
	now   func() time.Time
}

// NewService creates a new catalog service over the persisted store.
func NewService(store kv.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name        string          `json:"name" binding:"required"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock"`
	Discount    int             `json:"discount"`
}

// ProductUpdateRequest represents product update data; nil fields are
// left unchanged.
type ProductUpdateRequest struct {
	Name        *string          `json:"name"`
	SKU         *string          `json:"sku"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	Stock       *int             `json:"stock"`
	Discount    *int             `json:"discount"`
}

// ListOptions filters and orders product listings
type ListOptions struct {
	Category string
	Query    string
	Sort     string // price-low, price-high, popular, newest (default)
}

// Products returns every product in the catalog. An unreadable or
// structurally corrupt record is treated as an empty catalog rather
// than an error.
func (s *Service) Products() ([]Product, error) {
	var products []Product
	if err := kv.GetJSON(s.store, ProductsKey, &products); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []Product{}, nil
		}
		// Corrupt payload: fail open to an empty catalog.
		return []Product{}, nil
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// GetProductByID resolves a product identifier to its current
// attributes. Returns ErrNotFound when the id no longer resolves.
func (s *Service) GetProductByID(id string) (*Product, error) {
	products, err := s.Products()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListProducts returns products filtered and sorted per opts.
func (s *Service) ListProducts(opts ListOptions) ([]Product, error) {
	products, err := s.Products()
	if err != nil {
		return nil, err
	}

	filtered := make([]Product, 0, len(products))
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	for _, p := range products {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch opts.Sort {
	case "price-low":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price.LessThan(filtered[j].Price) })
	case "price-high":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[j].Price.LessThan(filtered[i].Price) })
	case "popular":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	default:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	}

	return filtered, nil
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("product name is required: %w", ErrInvalidInput)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("product price cannot be negative: %w", ErrInvalidInput)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("product stock cannot be negative: %w", ErrInvalidInput)
	}

	products, err := s.Products()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	product := Product{
		ID:          uuid.NewString(),
		SKU:         strings.TrimSpace(req.SKU),
		Name:        strings.TrimSpace(req.Name),
		Category:    defaultCategory(req.Category),
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Stock:       req.Stock,
		Discount:    req.Discount,
		Rating:      4.5,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	products = append(products, product)
	if err := kv.SetJSON(s.store, ProductsKey, products); err != nil {
		return nil, fmt.Errorf("failed to persist products: %w", err)
	}
	return &product, nil
}

// UpdateProduct applies the non-nil fields of req to an existing product.
func (s *Service) UpdateProduct(id string, req *ProductUpdateRequest) (*Product, error) {
	products, err := s.Products()
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		p := &products[i]
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return nil, fmt.Errorf("product name cannot be blank: %w", ErrInvalidInput)
			}
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.SKU != nil {
			p.SKU = strings.TrimSpace(*req.SKU)
		}
		if req.Category != nil {
			p.Category = defaultCategory(*req.Category)
		}
		if req.Price != nil {
			if req.Price.IsNegative() {
				return nil, fmt.Errorf("product price cannot be negative: %w", ErrInvalidInput)
			}
			p.Price = *req.Price
		}
		if req.Image != nil {
			p.Image = *req.Image
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Sizes != nil {
			p.Sizes = req.Sizes
		}
		if req.Colors != nil {
			p.Colors = req.Colors
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				return nil, fmt.Errorf("product stock cannot be negative: %w", ErrInvalidInput)
			}
			p.Stock = *req.Stock
		}
		if req.Discount != nil {
			p.Discount = *req.Discount
		}
		p.UpdatedAt = s.now().UTC()

		if err := kv.SetJSON(s.store, ProductsKey, products); err != nil {
			return nil, fmt.Errorf("failed to persist products: %w", err)
		}
		return p, nil
	}

	return nil, ErrNotFound
}

// DeleteProduct removes a product from the catalog. Carted references
// to it are dropped later by cart reconciliation.
func (s *Service) DeleteProduct(id string) error {
	products, err := s.Products()
	if err != nil {
		return err
	}

	remaining := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return ErrNotFound
	}

	if err := kv.SetJSON(s.store, ProductsKey, remaining); err != nil {
		return fmt.Errorf("failed to persist products: %w", err)
	}
	return nil
}

// Categories returns all category labels, fail-open to the empty list.
func (s *Service) Categories() ([]Category, error) {
	var categories []Category
	if err := kv.GetJSON(s.store, CategoriesKey, &categories); err != nil {
		return []Category{}, nil
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// CreateCategory stores a new category label.
func (s *Service) CreateCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrInvalidInput)
	}

	categories, err := s.Categories()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return nil, fmt.Errorf("category %q already exists: %w", name, ErrInvalidInput)
		}
	}

	category := Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	categories = append(categories, category)
	if err := kv.SetJSON(s.store, CategoriesKey, categories); err != nil {
		return nil, fmt.Errorf("failed to persist categories: %w", err)
	}
	return &category, nil
}

// DeleteCategory removes a category label. Products keep their label;
// the original storefront never cascaded category deletes.
func (s *Service) DeleteCategory(id string) error {
	categories, err := s.Categories()
	if err != nil {
		return err
	}

	remaining := categories[:0]
	found := false
	for _, c := range categories {
		if c.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return ErrNotFound
	}

	if err := kv.SetJSON(s.store, CategoriesKey, remaining); err != nil {
		return fmt.Errorf("failed to persist categories: %w", err)
	}
	return nil
}

// Stats computes the admin dashboard summary.
func (s *Service) Stats() (*Stats, error) {
	products, err := s.Products()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ProductCount: len(products),
		TotalValue:   decimal.Zero,
		AveragePrice: decimal.Zero,
	}
	if len(products) == 0 {
		return stats, nil
	}

	sum := decimal.Zero
	for _, p := range products {
		stats.TotalValue = stats.TotalValue.Add(p.StockValue())
		sum = sum.Add(p.Price)
	}
	stats.TotalValue = stats.TotalValue.Round(2)
	stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(products)))).Round(2)
	return stats, nil
}

// ReplaceAll overwrites the full catalog. Used by backup restore, which
// validates the incoming document before calling.
func (s *Service) ReplaceAll(products []Product, categories []Category) error {
	if products == nil {
		products = []Product{}
	}
	if categories == nil {
		categories = []Category{}
	}
	if err := kv.SetJSON(s.store, ProductsKey, products); err != nil {
		return fmt.Errorf("failed to persist products: %w", err)
	}
	if err := kv.SetJSON(s.store, CategoriesKey, categories); err != nil {
		return fmt.Errorf("failed to persist categories: %w", err)
	}
	return nil
}

// Clear removes the catalog keys entirely. Idempotent.
func (s *Service) Clear() error {
	if err := s.store.Delete(ProductsKey); err != nil {
		return err
	}
	return s.store.Delete(CategoriesKey)
}

// SeedDefaults writes the default category set and a small demo
// catalog, but only when the corresponding keys are still empty.
func (s *Service) SeedDefaults() error {
	categories, err := s.Categories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		for _, name := range []string{"Clothing", "Shoes", "Accessories", "Other"} {
			if _, err := s.CreateCategory(name); err != nil {
				return err
			}
		}
	}

	products, err := s.Products()
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return nil
	}

	seed := []ProductCreateRequest{
		{Name: "Classic Tee", Category: "Clothing", Price: decimal.RequireFromString("25.00"), Sizes: []string{"S", "M", "L"}, Colors: []string{"black", "white"}, Stock: 40},
		{Name: "Denim Jacket", Category: "Clothing", Price: decimal.RequireFromString("79.99"), Sizes: []string{"M", "L"}, Colors: []string{"blue"}, Stock: 12},
		{Name: "Canvas Sneakers", Category: "Shoes", Price: decimal.RequireFromString("54.50"), Sizes: []string{"8", "9", "10"}, Colors: []string{"white"}, Stock: 25},
	}
	for i := range seed {
		if _, err := s.CreateProduct(&seed[i]); err != nil {
			return err
		}
	}
	return nil
}

func defaultCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Other"
	}
	return name
}
