package ports

import (
	"context"
	"time"
)

// SignInResult is the outcome of the credential sign-in step.
type SignInResult struct {
	SubjectID    string
	Email        string
	RefreshToken string
}

// TokenExchangeResult is the outcome of trading a refresh token for a
// short-lived access token.
type TokenExchangeResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// IdentityProvider abstracts the external identity service. The real
// implementation talks to the hosted provider over HTTP; demo mode swaps in
// an in-process fake.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (*TokenExchangeResult, error)
}
