package server

import (
	"fmt"
	"net/http"
	"time"

	"catalog-console/internal/config"
	custommiddleware "catalog-console/internal/middleware"
	"catalog-console/internal/repository"
	"catalog-console/internal/service"
	"catalog-console/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
}

func NewServer(cfg *config.Config, logger *zap.Logger, products repository.ProductRepository, categories repository.CategoryRepository) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, products, categories),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
	}
}

// NewRouter builds the catalog API handler tree
func NewRouter(cfg *config.Config, logger *zap.Logger, products repository.ProductRepository, categories repository.CategoryRepository) http.Handler {
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	tokens := service.NewTokenService(cfg.JWT.Secret)
	authMiddleware := custommiddleware.AuthMiddleware(tokens, logger)

	productHandler := transport.NewProductHandler(products, categories, logger)
	productHandler.RegisterRoutes(router, authMiddleware)

	return router
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")
	s.logger.Sync()
	return nil
}
