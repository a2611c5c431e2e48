package ports

import (
	"context"

	"github.com/ringsidehq/member-portal/internal/core/domain"
)

// ProfileUpdateInput is a partial profile edit from the UI. Nil pointers mean
// "not supplied"; for the list fields a pointer to an empty slice means the
// member cleared the list, which is a different thing from omitting it.
type ProfileUpdateInput struct {
	Name   *string
	Email  *string
	Mobile *string

	DateOfBirth       *string
	Sex               *string
	Addresses         *[]string
	EmergencyContacts *[]string
}

// ProfileService assembles and edits the unified member profile.
type ProfileService interface {
	// FetchFullProfile merges the base profile, personal info, and
	// role-specific status into one UserProfile. Only the base profile fetch
	// is fatal; the secondary fetches degrade to absent fields.
	FetchFullProfile(ctx context.Context, sessionID string) (*domain.UserProfile, error)

	// ApplyProfileUpdate splits the partial edit into the backend's basic and
	// personal-info updates, then re-fetches the authoritative profile.
	ApplyProfileUpdate(ctx context.Context, sessionID string, update ProfileUpdateInput) (*domain.UserProfile, error)

	// Personalise forwards display preferences to the backend.
	Personalise(ctx context.Context, sessionID string, prefs map[string]string) error
}
