package ports

import "context"

// AuthSession is returned by a successful authentication.
type AuthSession struct {
	SessionID string
	SubjectID string
	Email     string
}

// SessionManager owns the identity-provider token pairs for live portal
// sessions and keeps access tokens fresh.
type SessionManager interface {
	// Authenticate performs the two-step credential exchange and registers a
	// new session on success.
	Authenticate(ctx context.Context, email, password string) (*AuthSession, error)

	// ValidAccessToken returns an access token with a comfortable amount of
	// lifetime left, refreshing synchronously when needed. A failed refresh
	// drops the session and returns domain.ErrUnauthenticated, as does an
	// unknown session id.
	ValidAccessToken(ctx context.Context, sessionID string) (string, error)

	// SignOut removes the session unconditionally. Idempotent.
	SignOut(sessionID string)
}
