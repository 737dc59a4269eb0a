package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalog-console/internal/domain"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	categoriesPath      = "/api/categories"
	productsPath        = "/api/products"
	productsSearchPath  = "/api/products/search"
	productsByCategory  = "/api/products/category"
	requestIDHeader     = "X-Request-ID"
	maxErrorBodyToParse = 64 << 10
)

// TokenSource yields the bearer token to send, or "" for none
type TokenSource interface {
	Token() string
}

// Config holds the configuration for the catalog API client
type Config struct {
	BaseURL string        // Catalog API base URL
	Timeout time.Duration // Whole-request timeout, zero for none
}

// HTTPError is returned for any non-2xx response
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// errorEnvelope mirrors the API's structured error body
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// restyLogger sends resty's own diagnostics to zap at debug level
type restyLogger struct {
	sugar *zap.SugaredLogger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.sugar.Debugf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.sugar.Debugf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.sugar.Debugf(format, v...) }

// Client is the catalog REST API client
type Client struct {
	rest   *resty.Client
	tokens TokenSource
	logger *zap.Logger
}

// New creates a new catalog API client. Requests are never retried.
func New(cfg Config, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	rest := resty.
		New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetRetryCount(0).
		SetLogger(restyLogger{sugar: logger.Sugar()}).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	rest.JSONMarshal = json.Marshal
	rest.JSONUnmarshal = json.Unmarshal

	return &Client{
		rest:   rest,
		tokens: tokens,
		logger: logger,
	}
}

// ListCategories fetches every category
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.do(ctx, http.MethodGet, categoriesPath, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// ListProducts fetches the whole catalog
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var prods []domain.Product
	if err := c.do(ctx, http.MethodGet, productsPath, &prods); err != nil {
		return nil, err
	}
	return prods, nil
}

// SearchProducts fetches the products matching term. The term is sent as is.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	var prods []domain.Product
	path := productsSearchPath + "?term=" + EncodeURIComponent(term)
	if err := c.do(ctx, http.MethodGet, path, &prods); err != nil {
		return nil, err
	}
	return prods, nil
}

// ProductsByCategory fetches the products of one category. The id is put into
// the path verbatim.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	var prods []domain.Product
	path := productsByCategory + "/" + categoryID
	if err := c.do(ctx, http.MethodGet, path, &prods); err != nil {
		return nil, err
	}
	return prods, nil
}

// DeleteProduct deletes one product. The response body is ignored.
func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	path := productsPath + "/" + strconv.FormatInt(productID, 10)
	return c.do(ctx, http.MethodDelete, path, nil)
}

// do performs a single request and decodes a 2xx body into out when out is
// non-nil
func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	requestID := uuid.New().String()
	req := c.rest.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("Sending request to catalog API",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug("Catalog API request failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}

	c.logger.Debug("Catalog API responded",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", resp.Time()),
	)

	if !resp.IsSuccess() {
		return newHTTPError(method, path, resp)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}

	return nil
}

func newHTTPError(method, path string, resp *resty.Response) *HTTPError {
	httpErr := &HTTPError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode(),
		Message:    http.StatusText(resp.StatusCode()),
	}

	body := resp.Body()
	if len(body) == 0 || len(body) > maxErrorBodyToParse {
		return httpErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		httpErr.Message = envelope.Error.Message
	}

	return httpErr
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from an HTTP response
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
