package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ringsidehq/member-portal/internal/api/metrics"
	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// AuthService implements sign-in, sign-out, and the deliberately unsupported
// signup.
type AuthService struct {
	sessions  ports.SessionManager
	profiles  ports.ProfileService
	throttle  ports.LoginThrottle
	audit     ports.AuditRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	sessions ports.SessionManager,
	profiles ports.ProfileService,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		sessions:  sessions,
		profiles:  profiles,
		throttle:  throttle,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login authenticates against the identity provider, assembles the unified
// profile, and mints the portal session token the UI attaches to later calls.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	locked, err := s.throttle.TooManyFailures(ctx, email)
	if err != nil {
		// Throttle store trouble must not lock everyone out.
		s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
	} else if locked {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	sess, err := s.sessions.Authenticate(ctx, email, password)
	if err != nil {
		if recErr := s.throttle.RecordFailure(ctx, email); recErr != nil {
			s.log.Warn().Err(recErr).Msg("failed to record login failure")
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	if resetErr := s.throttle.Reset(ctx, email); resetErr != nil {
		s.log.Warn().Err(resetErr).Msg("failed to reset login throttle")
	}

	profile, err := s.profiles.FetchFullProfile(ctx, sess.SessionID)
	if err != nil {
		// A session without a profile is useless to the UI; tear it down.
		s.sessions.SignOut(sess.SessionID)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	token, err := s.mintToken(sess, profile.Role)
	if err != nil {
		s.sessions.SignOut(sess.SessionID)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.recordAudit(ctx, &domain.AuditEvent{
		Actor:     sess.Email,
		Action:    domain.AuditSignIn,
		SubjectID: sess.SubjectID,
	})

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("subject_id", sess.SubjectID).Str("role", string(profile.Role)).Msg("member signed in")

	return &ports.LoginResult{Token: token, Profile: profile}, nil
}

// Logout drops the session. Always succeeds from the caller's perspective.
func (s *AuthService) Logout(ctx context.Context, sessionID, email string) {
	s.sessions.SignOut(sessionID)
	s.recordAudit(ctx, &domain.AuditEvent{Actor: email, Action: domain.AuditSignOut})
}

// Signup fails loudly. The member backend has no signup endpoint; returning
// success here would be a silent no-op the user cannot distinguish from a
// created account.
func (s *AuthService) Signup(ctx context.Context, email, _ string) error {
	s.log.Error().Str("email", email).Msg("signup attempted against a backend with no signup support")
	return domain.ErrSignupUnsupported
}

func (s *AuthService) mintToken(sess *ports.AuthSession, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sess.SessionID,
		"sub":   sess.SubjectID,
		"email": sess.Email,
		"role":  string(role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) recordAudit(ctx context.Context, event *domain.AuditEvent) {
	event.Timestamp = time.Now().UTC()
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("action", event.Action).Msg("failed to record audit event")
	}
}
