package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logouts   []string
	signupErr error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(_ context.Context, sessionID, _ string) {
	s.logouts = append(s.logouts, sessionID)
}

func (s *stubAuthService) Signup(_ context.Context, _, _ string) error {
	if s.signupErr != nil {
		return s.signupErr
	}
	return domain.ErrSignupUnsupported
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "ana@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token:   "portal-token",
				Profile: &domain.UserProfile{Name: "Ana Torres", Role: domain.RoleFighter},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login", `{"email":"ana@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "portal-token" {
		t.Errorf("token: %v", resp["token"])
	}
	profile, ok := resp["profile"].(map[string]any)
	if !ok || profile["name"] != "Ana Torres" {
		t.Errorf("profile payload: %+v", resp["profile"])
	}
}

func TestAuthHandler_Login_InvalidCredentialsPropagate(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/login", `{"email":"ana@example.com","password":"bad"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_ValidationFailures(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing email", `{"password":"secret"}`},
		{"bad email", `{"email":"not-an-email","password":"secret"}`},
		{"missing password", `{"email":"ana@example.com"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodPost, "/v1/auth/login", tc.body)
			if code := httpErrorCode(t, h.Login(c)); code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", code)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubAuthService{}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/logout", "")
	c.Set("session_id", "sess-1")
	c.Set("email", "ana@example.com")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(stub.logouts) != 1 || stub.logouts[0] != "sess-1" {
		t.Errorf("logouts: %#v", stub.logouts)
	}
}

func TestAuthHandler_Logout_NoClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/logout", "")
	if code := httpErrorCode(t, h.Logout(c)); code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestAuthHandler_Signup_AlwaysFails(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/signup",
		`{"email":"new@example.com","password":"longenough","confirm_password":"longenough"}`)
	err := h.Signup(c)
	if !errors.Is(err, domain.ErrSignupUnsupported) {
		t.Fatalf("expected ErrSignupUnsupported, got %v", err)
	}
}

func TestAuthHandler_Signup_PasswordMismatchCaughtLocally(t *testing.T) {
	stub := &stubAuthService{signupErr: errors.New("must not reach service")}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/signup",
		`{"email":"new@example.com","password":"longenough","confirm_password":"different"}`)
	if code := httpErrorCode(t, h.Signup(c)); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/signup",
		`{"email":"new@example.com","password":"short","confirm_password":"short"}`)
	if code := httpErrorCode(t, h.Signup(c)); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
}
