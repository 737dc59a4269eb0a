package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"catalog-console/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("product name is required")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, categoryID *int64) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

type productRepository struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

// NewProductRepository creates a new in-memory ProductRepository
func NewProductRepository() ProductRepository {
	return &productRepository{
		products: make(map[int64]domain.Product),
		nextID:   1,
	}
}

// Create stores a product. A zero ProductID is assigned by the repository
// and written back to product.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return ErrInvalidProduct
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ProductID == 0 {
		product.ProductID = r.nextID
	}
	if product.ProductID >= r.nextID {
		r.nextID = product.ProductID + 1
	}

	r.products[product.ProductID] = *product
	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}

	delete(r.products, id)
	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	return &product, nil
}

// List retrieves products ordered by ID, optionally restricted to one category
func (r *productRepository) List(ctx context.Context, categoryID *int64) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool {
		return categoryID == nil || p.CategoryID == *categoryID
	}), nil
}

// Search matches products whose name or description contains query,
// ignoring case. An empty query matches everything.
func (r *productRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return r.List(ctx, nil)
	}

	needle := strings.ToLower(query)
	return r.filter(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	}), nil
}

func (r *productRepository) filter(keep func(domain.Product) bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := []domain.Product{}
	for _, p := range r.products {
		if keep(p) {
			products = append(products, p)
		}
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})

	return products
}
