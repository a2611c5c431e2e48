package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

const (
	demoTokenPrefix   = "demo-access:"
	demoRefreshPrefix = "demo-refresh:"
	demoTokenLifetime = time.Hour
)

// DemoProvider is the in-process identity provider for offline demo mode.
// Any email signs in as long as the shared demo password matches; the
// password is kept only as a bcrypt hash, mirroring how real credentials
// would be handled.
type DemoProvider struct {
	passwordHash []byte
}

func NewDemoProvider(demoPassword string) (*DemoProvider, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("identity: hash demo password: %w", err)
	}
	return &DemoProvider{passwordHash: hash}, nil
}

func (p *DemoProvider) SignIn(_ context.Context, email, password string) (*ports.SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.SignInResult{
		SubjectID:    "demo-" + localPart(email),
		Email:        email,
		RefreshToken: demoRefreshPrefix + email,
	}, nil
}

func (p *DemoProvider) ExchangeRefreshToken(_ context.Context, refreshToken string) (*ports.TokenExchangeResult, error) {
	email, ok := strings.CutPrefix(refreshToken, demoRefreshPrefix)
	if !ok || email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.TokenExchangeResult{
		// The email rides inside the token so DemoProfileAPI can identify
		// the caller the same way the real backend does from a bearer token.
		AccessToken:  demoTokenPrefix + email + ":" + uuid.NewString(),
		RefreshToken: refreshToken,
		ExpiresIn:    demoTokenLifetime,
	}, nil
}

// TokenSource yields the current access token for a session. Satisfied by
// the session manager.
type TokenSource interface {
	ValidAccessToken(ctx context.Context, sessionID string) (string, error)
}

// demoMember is the mutable per-email state behind the demo profile source,
// so profile edits survive until the process exits.
type demoMember struct {
	basic ports.BasicProfile
	pii   ports.PersonalInfo
}

// DemoProfileAPI is the offline stand-in for the member-profile backend. It
// derives the caller from the demo access token and synthesizes a profile on
// first contact: an email carrying a medic or coach marker gets the matching
// scope, everything else is a fighter.
type DemoProfileAPI struct {
	tokens TokenSource

	mu      sync.Mutex
	members map[string]*demoMember
}

func NewDemoProfileAPI(tokens TokenSource) *DemoProfileAPI {
	return &DemoProfileAPI{tokens: tokens, members: make(map[string]*demoMember)}
}

func (a *DemoProfileAPI) GetProfile(ctx context.Context, sessionID string) (*ports.BasicProfile, error) {
	m, err := a.member(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	basic := m.basic
	basic.Scopes = append([]string(nil), m.basic.Scopes...)
	return &basic, nil
}

func (a *DemoProfileAPI) UpdateProfile(ctx context.Context, sessionID string, update ports.BasicProfileUpdate) error {
	m, err := a.member(ctx, sessionID)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if update.Name != nil {
		m.basic.Name = *update.Name
	}
	if update.Email != nil {
		m.basic.Email = *update.Email
	}
	if update.Mobile != nil {
		m.basic.Mobile = *update.Mobile
	}
	return nil
}

func (a *DemoProfileAPI) GetPersonalInfo(ctx context.Context, sessionID string) (*ports.PersonalInfo, error) {
	m, err := a.member(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	pii := m.pii
	pii.Addresses = append([]domain.ContactValue(nil), m.pii.Addresses...)
	pii.EmergencyContacts = append([]domain.ContactValue(nil), m.pii.EmergencyContacts...)
	return &pii, nil
}

func (a *DemoProfileAPI) UpdatePersonalInfo(ctx context.Context, sessionID string, update ports.PersonalInfoUpdate) error {
	m, err := a.member(ctx, sessionID)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if update.DateOfBirth != nil {
		m.pii.DateOfBirth = *update.DateOfBirth
	}
	if update.Sex != nil {
		m.pii.Sex = *update.Sex
	}
	if update.Addresses != nil {
		m.pii.Addresses = append([]domain.ContactValue(nil), *update.Addresses...)
	}
	if update.EmergencyContacts != nil {
		m.pii.EmergencyContacts = append([]domain.ContactValue(nil), *update.EmergencyContacts...)
	}
	return nil
}

func (a *DemoProfileAPI) RoleStatus(ctx context.Context, sessionID string, _ domain.Role) (string, error) {
	if _, err := a.member(ctx, sessionID); err != nil {
		return "", err
	}
	return "active", nil
}

func (a *DemoProfileAPI) Personalise(ctx context.Context, sessionID string, _ map[string]string) error {
	_, err := a.member(ctx, sessionID)
	return err
}

// member resolves the session to its demo member record, creating one on
// first contact.
func (a *DemoProfileAPI) member(ctx context.Context, sessionID string) (*demoMember, error) {
	token, err := a.tokens.ValidAccessToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	email := emailFromToken(token)
	if email == "" {
		return nil, domain.ErrUnauthenticated
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.members[email]
	if !ok {
		m = newDemoMember(email)
		a.members[email] = m
	}
	return m, nil
}

func newDemoMember(email string) *demoMember {
	local := localPart(email)
	scopes := []string{"profile:read", "profile:write"}
	switch {
	case strings.Contains(email, "medic"):
		scopes = append(scopes, "role:medic")
	case strings.Contains(email, "coach"):
		scopes = append(scopes, "role:coach")
	}

	return &demoMember{
		basic: ports.BasicProfile{
			ID:            "demo-" + local,
			MemberCode:    "RS-DEMO-" + strings.ToUpper(local),
			Name:          titleCase(strings.ReplaceAll(local, ".", " ")),
			Email:         email,
			EmailVerified: true,
			Scopes:        scopes,
		},
		pii: ports.PersonalInfo{
			DateOfBirth: "1992-06-15",
			Sex:         "unspecified",
			// Mixed shapes on purpose: the demo data exercises the same
			// normalisation the real backend's records need.
			Addresses: []domain.ContactValue{
				domain.NewTextValue("12 Corner Post Lane, Rington"),
				domain.NewStructuredValue(map[string]any{
					"line1":    "Unit 4, Southpaw Industrial Estate",
					"city":     "Rington",
					"postcode": "RG2 4XY",
				}),
			},
			EmergencyContacts: []domain.ContactValue{
				domain.NewStructuredValue(map[string]any{
					"name":         "Sam Cutman",
					"relationship": "coach",
					"phone":        "+44 7700 900123",
				}),
			},
		},
	}
}

func emailFromToken(token string) string {
	rest, ok := strings.CutPrefix(token, demoTokenPrefix)
	if !ok {
		return ""
	}
	if idx := strings.LastIndexByte(rest, ':'); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func localPart(email string) string {
	if idx := strings.IndexByte(email, '@'); idx >= 0 {
		return email[:idx]
	}
	return email
}
