package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// sessionClaims is the authenticated caller as seen by handlers, extracted
// from the context values the Auth middleware injects.
type sessionClaims struct {
	SessionID string
	SubjectID string
	Email     string
	Role      string
}

// ctxClaims extracts the auth claims and fast-fails before any service call:
// a missing session id means the middleware did not run or the token was
// minted without one, and no downstream call can succeed without it.
func ctxClaims(c echo.Context) (sessionClaims, error) {
	claims := sessionClaims{}
	claims.SessionID, _ = c.Get("session_id").(string)
	claims.SubjectID, _ = c.Get("subject_id").(string)
	claims.Email, _ = c.Get("email").(string)
	claims.Role, _ = c.Get("role").(string)

	if claims.SessionID == "" {
		return sessionClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
