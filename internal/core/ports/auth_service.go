package ports

import (
	"context"

	"github.com/ringsidehq/member-portal/internal/core/domain"
)

// LoginResult is handed back to the UI after a successful sign-in.
type LoginResult struct {
	Token   string              `json:"token"`
	Profile *domain.UserProfile `json:"profile"`
}

// AuthService orchestrates sign-in against the identity provider, portal
// token minting, and sign-out.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID, email string)
	// Signup always fails with domain.ErrSignupUnsupported.
	Signup(ctx context.Context, email, password string) error
}
