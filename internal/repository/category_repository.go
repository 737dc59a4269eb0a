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
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
}

type categoryRepository struct {
	mu         sync.RWMutex
	categories map[int64]domain.Category
	nextID     int64
}

// NewCategoryRepository creates a new in-memory CategoryRepository
func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{
		categories: make(map[int64]domain.Category),
		nextID:     1,
	}
}

// Create stores a category. Names are unique, ignoring case.
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return ErrCategoryAlreadyExists
		}
	}

	if category.CategoryID == 0 {
		category.CategoryID = r.nextID
	}
	if category.CategoryID >= r.nextID {
		r.nextID = category.CategoryID + 1
	}

	r.categories[category.CategoryID] = *category
	return nil
}

// List retrieves all categories ordered by name
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

// FindByID retrieves a category by ID
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}

	return &category, nil
}
