package domain

import "strings"

// Role is the portal-facing role derived from the scopes granted to a member.
type Role string

const (
	RoleFighter Role = "fighter"
	RoleMedic   Role = "medic"
)

// medic markers inside a scope string that promote a member to the medic role.
var medicScopeMarkers = []string{"medic", "coach"}

// DeriveRole maps a scope set to a Role. Any scope containing a medic or
// coach marker implies RoleMedic; everything else is a fighter.
func DeriveRole(scopes []string) Role {
	for _, scope := range scopes {
		lowered := strings.ToLower(scope)
		for _, marker := range medicScopeMarkers {
			if strings.Contains(lowered, marker) {
				return RoleMedic
			}
		}
	}
	return RoleFighter
}

// UserProfile is the unified member view assembled by the profile service.
// It is replaced wholesale on every successful fetch and never partially
// mutated elsewhere.
type UserProfile struct {
	ID             string   `json:"id"`
	MemberCode     string   `json:"member_code"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Mobile         string   `json:"mobile,omitempty"`
	EmailVerified  bool     `json:"email_verified"`
	MobileVerified bool     `json:"mobile_verified"`
	Scopes         []string `json:"scopes"`
	Role           Role     `json:"role"`

	// Personal info. Addresses and emergency contacts are normalized display
	// strings; nil means the data was unavailable, an empty slice means the
	// member explicitly cleared the list.
	DateOfBirth       string   `json:"date_of_birth,omitempty"`
	Sex               string   `json:"sex,omitempty"`
	Addresses         []string `json:"addresses,omitempty"`
	EmergencyContacts []string `json:"emergency_contacts,omitempty"`

	// RoleStatus is the free-text lifecycle state reported by the role
	// endpoint (active, suspended, retired, ...). Empty when the role
	// status fetch failed or returned nothing.
	RoleStatus string `json:"role_status,omitempty"`
}
