package ports

import (
	"context"

	"github.com/ringsidehq/member-portal/internal/core/domain"
)

// BasicProfile mirrors GET /profile/me on the member backend.
type BasicProfile struct {
	ID             string   `json:"id"`
	MemberCode     string   `json:"member_code"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Mobile         string   `json:"mobile"`
	EmailVerified  bool     `json:"email_verified"`
	MobileVerified bool     `json:"mobile_verified"`
	Scopes         []string `json:"scopes"`
}

// BasicProfileUpdate is a partial PUT /profile/me payload. Nil fields are
// omitted from the request and left unchanged upstream.
type BasicProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Mobile *string `json:"mobile,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u BasicProfileUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Mobile == nil
}

// PersonalInfo mirrors GET /profile/me/pii. Address and contact entries come
// back in heterogeneous shapes, hence domain.ContactValue.
type PersonalInfo struct {
	DateOfBirth       string                `json:"date_of_birth"`
	Sex               string                `json:"sex"`
	Addresses         []domain.ContactValue `json:"addresses"`
	EmergencyContacts []domain.ContactValue `json:"emergency_contacts"`
}

// PersonalInfoUpdate is a partial PUT /profile/me/pii payload. Nil pointers
// mean "leave unchanged"; a pointer to an empty slice explicitly clears the
// list upstream.
type PersonalInfoUpdate struct {
	DateOfBirth       *string                `json:"date_of_birth,omitempty"`
	Sex               *string                `json:"sex,omitempty"`
	Addresses         *[]domain.ContactValue `json:"addresses,omitempty"`
	EmergencyContacts *[]domain.ContactValue `json:"emergency_contacts,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u PersonalInfoUpdate) Empty() bool {
	return u.DateOfBirth == nil && u.Sex == nil && u.Addresses == nil && u.EmergencyContacts == nil
}

// ProfileAPI is the member backend surface the aggregator fans out to. The
// real implementation routes every call through the authenticated gateway.
type ProfileAPI interface {
	GetProfile(ctx context.Context, sessionID string) (*BasicProfile, error)
	UpdateProfile(ctx context.Context, sessionID string, update BasicProfileUpdate) error
	GetPersonalInfo(ctx context.Context, sessionID string) (*PersonalInfo, error)
	UpdatePersonalInfo(ctx context.Context, sessionID string, update PersonalInfoUpdate) error
	// RoleStatus fetches the lifecycle state from the fighter or coach
	// endpoint depending on the derived role.
	RoleStatus(ctx context.Context, sessionID string, role domain.Role) (string, error)
	Personalise(ctx context.Context, sessionID string, prefs map[string]string) error
}
