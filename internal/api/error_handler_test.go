package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("account frozen: %w", domain.ErrAccountRestricted), http.StatusForbidden},
		{domain.ErrContentRejected, http.StatusUnprocessableEntity},
		{fmt.Errorf("mobile number: %w", domain.ErrValidationFailed), http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{fmt.Errorf("jobs: %w", domain.ErrBackendUnavailable), http.StatusServiceUnavailable},
		{echo.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: code = %d, want %d", tc.err, rec.Code, tc.code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%v: invalid json body: %v", tc.err, err)
			continue
		}
		if resp["error"] == "" {
			t.Errorf("%v: empty error message", tc.err)
		}
	}
}

func TestHTTPErrorHandler_UnexpectedErrorHidesDetails(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("password=hunter2 leaked into an error"), c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp["error"])
	}
}
