package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ringsidehq/member-portal/internal/api/metrics"
	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// refreshMargin is how much remaining lifetime an access token must have
// before it is handed out without a refresh.
const refreshMargin = 5 * time.Minute

// session is one live portal session. The access and refresh tokens are
// always stored together or removed together.
type session struct {
	subjectID    string
	email        string
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// SessionManager keeps the identity-provider token pair for each live portal
// session and refreshes access tokens opportunistically before expiry.
type SessionManager struct {
	provider ports.IdentityProvider
	log      zerolog.Logger

	now      func() time.Time
	newID    func() string
	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionManager(provider ports.IdentityProvider, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		provider: provider,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]*session),
	}
}

// Authenticate performs the two-step exchange against the identity provider:
// a credential sign-in that yields the refresh token and subject id, then a
// refresh-token exchange for the short-lived access token. Failure at either
// step aborts the whole operation; nothing is stored until both succeed.
func (m *SessionManager) Authenticate(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	signIn, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	tokens, err := m.provider.ExchangeRefreshToken(ctx, signIn.RefreshToken)
	if err != nil {
		return nil, err
	}

	refreshToken := tokens.RefreshToken
	if refreshToken == "" {
		refreshToken = signIn.RefreshToken
	}

	id := m.newID()

	m.mu.Lock()
	m.sessions[id] = &session{
		subjectID:    signIn.SubjectID,
		email:        signIn.Email,
		accessToken:  tokens.AccessToken,
		refreshToken: refreshToken,
		expiresAt:    m.now().Add(tokens.ExpiresIn),
	}
	m.mu.Unlock()

	m.log.Info().Str("subject_id", signIn.SubjectID).Msg("session established")

	return &ports.AuthSession{SessionID: id, SubjectID: signIn.SubjectID, Email: signIn.Email}, nil
}

// ValidAccessToken returns the session's access token while more than
// refreshMargin of lifetime remains; otherwise it performs one synchronous
// refresh first. A failed refresh is fatal for the session: the tokens are
// dropped and the caller must re-authenticate. Holding the manager mutex
// across the exchange serializes concurrent refreshes of the same session.
func (m *SessionManager) ValidAccessToken(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return "", domain.ErrUnauthenticated
	}

	if m.now().Add(refreshMargin).Before(s.expiresAt) {
		return s.accessToken, nil
	}

	tokens, err := m.provider.ExchangeRefreshToken(ctx, s.refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		m.log.Warn().Err(err).Str("subject_id", s.subjectID).Msg("token refresh failed, dropping session")
		delete(m.sessions, sessionID)
		return "", domain.ErrUnauthenticated
	}
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()

	s.accessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		s.refreshToken = tokens.RefreshToken
	}
	s.expiresAt = m.now().Add(tokens.ExpiresIn)

	return s.accessToken, nil
}

// SignOut removes the session and both of its tokens. Idempotent.
func (m *SessionManager) SignOut(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}
