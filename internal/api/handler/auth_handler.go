package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// AuthHandler handles sign-in, sign-out, and signup.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a member and returns a portal session token plus the
// unified profile.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  ports.LoginResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Logout drops the portal session.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "session removed"
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	h.authService.Logout(c.Request().Context(), claims.SessionID, claims.Email)
	return c.NoContent(http.StatusNoContent)
}

// Signup always fails: the member backend has no signup endpoint. Validation
// mistakes (mismatched confirmation, weak password) are caught here and
// never reach the network.
//
// @Summary      Sign up (permanently unsupported)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Failure      400   {object}  errorResponse
// @Failure      501   {object}  errorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Password != req.ConfirmPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "passwords do not match")
	}

	return h.authService.Signup(c.Request().Context(), req.Email, req.Password)
}
