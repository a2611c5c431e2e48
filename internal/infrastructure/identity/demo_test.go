package identity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

const demoPassword = "ringside-demo"

func newTestDemoProvider(t *testing.T) *DemoProvider {
	t.Helper()
	p, err := NewDemoProvider(demoPassword)
	if err != nil {
		t.Fatalf("new demo provider: %v", err)
	}
	return p
}

func TestDemoProvider_SignIn_AnyEmailWithSharedPassword(t *testing.T) {
	p := newTestDemoProvider(t)

	result, err := p.SignIn(context.Background(), "Ana.Torres@Example.com", demoPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Email != "ana.torres@example.com" {
		t.Errorf("email must be lowercased, got %q", result.Email)
	}
	if result.SubjectID != "demo-ana.torres" {
		t.Errorf("subject id: %q", result.SubjectID)
	}
	if result.RefreshToken == "" {
		t.Error("expected a refresh token")
	}
}

func TestDemoProvider_SignIn_Rejections(t *testing.T) {
	p := newTestDemoProvider(t)

	cases := []struct{ email, password string }{
		{"ana@example.com", "wrong-password"},
		{"not-an-email", demoPassword},
		{"", demoPassword},
	}
	for _, tc := range cases {
		if _, err := p.SignIn(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("email=%q: expected ErrInvalidCredentials, got %v", tc.email, err)
		}
	}
}

func TestDemoProvider_Exchange(t *testing.T) {
	p := newTestDemoProvider(t)

	signIn, err := p.SignIn(context.Background(), "ana@example.com", demoPassword)
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	tokens, err := p.ExchangeRefreshToken(context.Background(), signIn.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(tokens.AccessToken, demoTokenPrefix+"ana@example.com:") {
		t.Errorf("access token must carry the email, got %q", tokens.AccessToken)
	}
	if tokens.ExpiresIn != demoTokenLifetime {
		t.Errorf("expires in: %v", tokens.ExpiresIn)
	}

	if _, err := p.ExchangeRefreshToken(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown refresh token must be rejected, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Demo profile API
// ---------------------------------------------------------------------------

// fixedTokenSource hands back one demo access token for every session.
type fixedTokenSource struct {
	token string
	err   error
}

func (s fixedTokenSource) ValidAccessToken(context.Context, string) (string, error) {
	return s.token, s.err
}

func demoTokenFor(email string) string {
	return demoTokenPrefix + email + ":token-1"
}

func TestDemoProfileAPI_SynthesizesFighter(t *testing.T) {
	api := NewDemoProfileAPI(fixedTokenSource{token: demoTokenFor("ana.torres@example.com")})

	profile, err := api.GetProfile(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Ana Torres" {
		t.Errorf("name: %q", profile.Name)
	}
	if profile.MemberCode != "RS-DEMO-ANA.TORRES" {
		t.Errorf("member code: %q", profile.MemberCode)
	}
	if got := domain.DeriveRole(profile.Scopes); got != domain.RoleFighter {
		t.Errorf("expected fighter scopes, derived %q from %v", got, profile.Scopes)
	}
}

func TestDemoProfileAPI_MedicEmailGetsMedicScope(t *testing.T) {
	api := NewDemoProfileAPI(fixedTokenSource{token: demoTokenFor("medic.rivera@example.com")})

	profile, err := api.GetProfile(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := domain.DeriveRole(profile.Scopes); got != domain.RoleMedic {
		t.Errorf("medic email must yield medic scopes, derived %q from %v", got, profile.Scopes)
	}
}

func TestDemoProfileAPI_CoachEmailGetsMedicRole(t *testing.T) {
	api := NewDemoProfileAPI(fixedTokenSource{token: demoTokenFor("coach.sam@example.com")})

	profile, _ := api.GetProfile(context.Background(), "sess-1")
	if got := domain.DeriveRole(profile.Scopes); got != domain.RoleMedic {
		t.Errorf("coach email must yield the medic role, derived %q from %v", got, profile.Scopes)
	}
}

func TestDemoProfileAPI_PersonalInfoMixesShapes(t *testing.T) {
	api := NewDemoProfileAPI(fixedTokenSource{token: demoTokenFor("ana@example.com")})

	pii, err := api.GetPersonalInfo(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pii.Addresses) != 2 {
		t.Fatalf("expected 2 demo addresses, got %d", len(pii.Addresses))
	}
	// One each of both wire shapes, to exercise the display normalizer.
	if pii.Addresses[0].Structured() || !pii.Addresses[1].Structured() {
		t.Errorf("expected text then structured, got %v/%v", pii.Addresses[0].Structured(), pii.Addresses[1].Structured())
	}
}

func TestDemoProfileAPI_UpdatesPersistForSession(t *testing.T) {
	api := NewDemoProfileAPI(fixedTokenSource{token: demoTokenFor("ana@example.com")})

	name := "Ana T."
	if err := api.UpdateProfile(context.Background(), "sess-1", ports.BasicProfileUpdate{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	dob := "1993-01-02"
	if err := api.UpdatePersonalInfo(context.Background(), "sess-1", ports.PersonalInfoUpdate{DateOfBirth: &dob}); err != nil {
		t.Fatalf("update pii: %v", err)
	}

	profile, _ := api.GetProfile(context.Background(), "sess-1")
	if profile.Name != "Ana T." {
		t.Errorf("name after update: %q", profile.Name)
	}
	pii, _ := api.GetPersonalInfo(context.Background(), "sess-1")
	if pii.DateOfBirth != "1993-01-02" {
		t.Errorf("dob after update: %q", pii.DateOfBirth)
	}
}

func TestDemoProfileAPI_TokenFailurePropagates(t *testing.T) {
	api := NewDemoProfileAPI(fixedTokenSource{err: domain.ErrUnauthenticated})

	if _, err := api.GetProfile(context.Background(), "sess-1"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestDemoProfileAPI_NonDemoTokenRejected(t *testing.T) {
	api := NewDemoProfileAPI(fixedTokenSource{token: "some-real-looking-jwt"})

	if _, err := api.GetProfile(context.Background(), "sess-1"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}
