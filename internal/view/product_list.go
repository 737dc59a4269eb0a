// Package view holds the product list view model: the state behind the
// catalog screen and the actions a user can trigger on it.
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"catalog-console/internal/domain"
	"catalog-console/internal/task"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// CatalogAPI is the remote catalog the view reads from and mutates
type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, term string) ([]domain.Product, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

// AuthService reports who is signed in. A nil user means nobody is.
type AuthService interface {
	CurrentUser() *domain.User
}

// Notifier shows a short acknowledgment to the user
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// State is a point-in-time copy of the view state
type State struct {
	Products           []domain.Product
	Categories         []domain.Category
	SearchTerm         string
	SelectedCategoryID string
	IsAdmin            bool
}

// ProductList is the view model for the product catalog screen.
//
// Requests are fire-and-forget: every action starts its request and returns a
// future immediately. Completions apply to state in the order they arrive, so
// a slow early response can overwrite a faster later one.
type ProductList struct {
	api      CatalogAPI
	auth     AuthService
	notifier Notifier
	logger   *zap.Logger

	mu                 sync.RWMutex
	products           []domain.Product
	categories         []domain.Category
	searchTerm         string
	selectedCategoryID string
	isAdmin            bool

	inflight conc.WaitGroup
}

// NewProductList creates a new ProductList
func NewProductList(api CatalogAPI, auth AuthService, notifier Notifier, logger *zap.Logger) *ProductList {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}

	return &ProductList{
		api:        api,
		auth:       auth,
		notifier:   notifier,
		logger:     logger,
		products:   []domain.Product{},
		categories: []domain.Category{},
	}
}

// IsAdminUser reports whether u holds the admin role. No user is not an admin.
func IsAdminUser(u *domain.User) bool {
	if u == nil {
		return false
	}
	return u.RoleName == domain.RoleAdmin
}

// Initialize derives the admin flag, then fires the category and product
// fetches. Failures of either fetch leave the previous state in place. The
// returned future settles once both fetches have completed and carries both
// fetch errors joined with errors.Join, or nil when both succeeded.
func (p *ProductList) Initialize(ctx context.Context) *task.Future[struct{}] {
	p.checkUserRole()
	categories := p.loadCategories(ctx)
	products := p.LoadAllProducts(ctx)

	return task.Then(categories, func(_ []domain.Category, catErr error) (struct{}, error) {
		_, prodErr := products.Wait()
		return struct{}{}, errors.Join(catErr, prodErr)
	})
}

func (p *ProductList) checkUserRole() {
	var user *domain.User
	if p.auth != nil {
		user = p.auth.CurrentUser()
	}

	p.mu.Lock()
	p.isAdmin = IsAdminUser(user)
	p.mu.Unlock()
}

func (p *ProductList) loadCategories(ctx context.Context) *task.Future[[]domain.Category] {
	return task.Go(ctx, &p.inflight, func(ctx context.Context) ([]domain.Category, error) {
		cats, err := p.api.ListCategories(ctx)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.categories = cats
		p.mu.Unlock()
		return cats, nil
	})
}

// LoadAllProducts fetches the whole catalog and replaces the product list.
// A failure leaves the list as it was.
func (p *ProductList) LoadAllProducts(ctx context.Context) *task.Future[[]domain.Product] {
	return task.Go(ctx, &p.inflight, func(ctx context.Context) ([]domain.Product, error) {
		prods, err := p.api.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		p.setProducts(prods)
		return prods, nil
	})
}

// SearchProducts runs a search for the current search term. A blank term
// loads the whole catalog instead. On failure the list is emptied.
func (p *ProductList) SearchProducts(ctx context.Context) *task.Future[[]domain.Product] {
	term := p.SearchTerm()
	if strings.TrimSpace(term) == "" {
		return p.LoadAllProducts(ctx)
	}

	return task.Go(ctx, &p.inflight, func(ctx context.Context) ([]domain.Product, error) {
		prods, err := p.api.SearchProducts(ctx, term)
		if err != nil {
			p.setProducts([]domain.Product{})
			p.logger.Error("Search error", zap.String("term", term), zap.Error(err))
			return nil, err
		}

		p.setProducts(prods)
		return prods, nil
	})
}

// FilterByCategory loads the products of the selected category. No selection
// loads the whole catalog instead. On failure the list is emptied.
func (p *ProductList) FilterByCategory(ctx context.Context) *task.Future[[]domain.Product] {
	categoryID := p.SelectedCategoryID()
	if categoryID == "" {
		return p.LoadAllProducts(ctx)
	}

	return task.Go(ctx, &p.inflight, func(ctx context.Context) ([]domain.Product, error) {
		prods, err := p.api.ProductsByCategory(ctx, categoryID)
		if err != nil {
			p.setProducts([]domain.Product{})
			p.logger.Error("Category filter error", zap.String("category_id", categoryID), zap.Error(err))
			return nil, err
		}

		p.setProducts(prods)
		return prods, nil
	})
}

// UpdateProduct acknowledges the request. Editing is not implemented.
func (p *ProductList) UpdateProduct(product domain.Product) {
	p.notifier.Notify(fmt.Sprintf("Update product: %s", product.Name))
}

// ViewProduct acknowledges the request. There is no detail view.
func (p *ProductList) ViewProduct(product domain.Product) {
	p.notifier.Notify(fmt.Sprintf("Viewing model for: %s", product.Name))
}

func (p *ProductList) setProducts(prods []domain.Product) {
	p.mu.Lock()
	p.products = prods
	p.mu.Unlock()
}

// Settle blocks until every request started so far has completed.
func (p *ProductList) Settle() {
	p.inflight.Wait()
}

// SetSearchTerm binds the search input
func (p *ProductList) SetSearchTerm(term string) {
	p.mu.Lock()
	p.searchTerm = term
	p.mu.Unlock()
}

// SearchTerm returns the bound search input
func (p *ProductList) SearchTerm() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.searchTerm
}

// SetSelectedCategoryID binds the category selector. Empty means no selection.
func (p *ProductList) SetSelectedCategoryID(id string) {
	p.mu.Lock()
	p.selectedCategoryID = id
	p.mu.Unlock()
}

// SelectedCategoryID returns the bound category selection
func (p *ProductList) SelectedCategoryID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selectedCategoryID
}

// IsAdmin reports whether admin affordances should be shown
func (p *ProductList) IsAdmin() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isAdmin
}

// Products returns a copy of the current product list
func (p *ProductList) Products() []domain.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.Product{}, p.products...)
}

// Categories returns a copy of the current category list
func (p *ProductList) Categories() []domain.Category {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.Category{}, p.categories...)
}

// Snapshot returns a copy of the whole view state
func (p *ProductList) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return State{
		Products:           append([]domain.Product{}, p.products...),
		Categories:         append([]domain.Category{}, p.categories...),
		SearchTerm:         p.searchTerm,
		SelectedCategoryID: p.selectedCategoryID,
		IsAdmin:            p.isAdmin,
	}
}
