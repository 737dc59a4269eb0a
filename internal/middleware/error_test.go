package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-console/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestProperty_ErrorsHaveConsistentStructure(t *testing.T) {
	properties := gopter.NewProperties(nil)

	standardCodes := []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusInternalServerError,
	}

	properties.Property("all error responses have consistent structure", prop.ForAll(
		func(message string) bool {
			statusCode := standardCodes[len(message)%len(standardCodes)]

			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode || w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}

			if response.Error.Code != http.StatusText(statusCode) || response.Error.Message != message {
				return false
			}

			_, err := time.Parse(time.RFC3339, response.Error.Timestamp)
			return err == nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestErrorHandlingMiddlewareRecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/products", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	if response.Error.Message != "internal server error" {
		t.Errorf("Unexpected message %q", response.Error.Message)
	}
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, http.StatusOK, []string{"a", "b"})

	if w.Body.String() != "[\"a\",\"b\"]\n" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{repository.ErrProductNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", repository.ErrCategoryNotFound), http.StatusNotFound},
		{repository.ErrInvalidProduct, http.StatusBadRequest},
		{repository.ErrCategoryAlreadyExists, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if status, _ := StatusForError(tc.err); status != tc.status {
			t.Errorf("StatusForError(%v) = %d, want %d", tc.err, status, tc.status)
		}
	}
}

func TestRespondWithDomainErrorLogsOnlyServerErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	r := httptest.NewRequest("DELETE", "/api/products/9", nil)

	w := httptest.NewRecorder()
	RespondWithDomainError(w, r, logger, repository.ErrProductNotFound)
	if w.Code != http.StatusNotFound || logs.Len() != 0 {
		t.Fatalf("Expected a silent 404, got %d with %d log entries", w.Code, logs.Len())
	}

	w = httptest.NewRecorder()
	RespondWithDomainError(w, r, logger, errors.New("disk on fire"))
	if w.Code != http.StatusInternalServerError || logs.Len() != 1 {
		t.Fatalf("Expected a logged 500, got %d with %d log entries", w.Code, logs.Len())
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	if response.Error.Message != "internal server error" {
		t.Errorf("Internal error text leaked: %q", response.Error.Message)
	}
}
