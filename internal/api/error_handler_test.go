package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ringsidehq/member-portal/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"wrapped credentials", errors.Join(domain.ErrInvalidCredentials), http.StatusUnauthorized, ""},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "please sign in again"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many sign-in attempts"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"unknown entry type", domain.ErrUnknownEntryType, http.StatusUnprocessableEntity, "unknown medical entry type"},
		{"signup", domain.ErrSignupUnsupported, http.StatusNotImplemented, "signup is not supported by the member backend"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := invokeErrorHandler(t, tc.err)
			if code != tc.wantCode {
				t.Errorf("code: expected %d, got %d", tc.wantCode, code)
			}
			if tc.wantMsg != "" && msg != tc.wantMsg {
				t.Errorf("message: expected %q, got %q", tc.wantMsg, msg)
			}
		})
	}
}

func TestErrorHandler_APIErrorCarriesStatus(t *testing.T) {
	code, msg := invokeErrorHandler(t, domain.NewAPIError(http.StatusRequestEntityTooLarge, "photo too large"))
	if code != http.StatusRequestEntityTooLarge {
		t.Errorf("code: %d", code)
	}
	if msg != "photo too large" {
		t.Errorf("message: %q", msg)
	}
}

func TestErrorHandler_TransportErrorBecomesBadGateway(t *testing.T) {
	code, msg := invokeErrorHandler(t, domain.NewTransportError())
	if code != http.StatusBadGateway {
		t.Errorf("code: %d", code)
	}
	if msg != "network error, please check your connection and try again" {
		t.Errorf("message: %q", msg)
	}
}

func TestErrorHandler_EchoErrorPassesThrough(t *testing.T) {
	code, msg := invokeErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Errorf("code: %d", code)
	}
	if msg != "invalid payload" {
		t.Errorf("message: %q", msg)
	}
}

func TestErrorHandler_UnexpectedErrorHidesDetail(t *testing.T) {
	code, msg := invokeErrorHandler(t, errors.New("pq: connection reset"))
	if code != http.StatusInternalServerError {
		t.Errorf("code: %d", code)
	}
	if msg != "internal server error" {
		t.Errorf("internal detail must not leak, got %q", msg)
	}
}
