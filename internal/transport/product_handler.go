package transport

import (
	"net/http"
	"strconv"

	"catalog-console/internal/middleware"
	"catalog-console/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SearchQuery is the query string of the search endpoint
type SearchQuery struct {
	Term string `query:"term" validate:"required,max=200"`
}

// ProductIDParam is a product id taken from the path
type ProductIDParam struct {
	ID int64 `query:"id" validate:"gt=0"`
}

// ProductHandler serves the catalog endpoints
type ProductHandler struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	logger     *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products repository.ProductRepository, categories repository.CategoryRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/categories", h.ListCategories)

	r.Route("/api/products", func(r chi.Router) {
		// Public routes
		r.Get("/", h.ListProducts)
		r.Get("/search", h.SearchProducts)
		r.Get("/category/{id}", h.ProductsByCategory)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireAdmin(h.logger))
			r.Delete("/{id}", h.DeleteProduct)
		})
	})
}

// ListCategories handles GET /api/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), nil)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// SearchProducts handles GET /api/products/search?term=
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := SearchQuery{Term: r.URL.Query().Get("term")}
	if err := middleware.ValidateStruct(query); err != nil {
		h.logger.Debug("Search validation failed", zap.Error(err))
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return
	}

	products, err := h.products.Search(r.Context(), query.Term)
	if err != nil {
		h.logger.Error("Search failed", zap.String("term", query.Term), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ProductsByCategory handles GET /api/products/category/{id}
func (h *ProductHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	param, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if _, err := h.categories.FindByID(r.Context(), param.ID); err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	products, err := h.products.List(r.Context(), &param.ID)
	if err != nil {
		h.logger.Error("Failed to list products by category", zap.Int64("category_id", param.ID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	param, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), param.ID); err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	fields := []zap.Field{zap.Int64("product_id", param.ID)}
	if user, ok := middleware.GetUser(r.Context()); ok {
		fields = append(fields, zap.String("user_id", user.UserID))
	}
	h.logger.Info("Product deleted", fields...)
	w.WriteHeader(http.StatusNoContent)
}

// parseID reads the {id} path parameter, answering 400 itself when it is not
// a positive integer
func (h *ProductHandler) parseID(w http.ResponseWriter, r *http.Request) (ProductIDParam, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Debug("Invalid id parameter", zap.String("id", raw))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return ProductIDParam{}, false
	}

	param := ProductIDParam{ID: id}
	if err := middleware.ValidateStruct(param); err != nil {
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return ProductIDParam{}, false
	}

	return param, true
}
