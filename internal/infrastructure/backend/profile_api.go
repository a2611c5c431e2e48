package backend

import (
	"context"
	"net/http"

	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// ProfileAPI implements ports.ProfileAPI against the real member backend,
// routing every call through the authenticated gateway.
type ProfileAPI struct {
	gw *Client
}

func NewProfileAPI(gw *Client) *ProfileAPI {
	return &ProfileAPI{gw: gw}
}

func (a *ProfileAPI) GetProfile(ctx context.Context, sessionID string) (*ports.BasicProfile, error) {
	var profile ports.BasicProfile
	if err := a.gw.Do(ctx, sessionID, http.MethodGet, "/profile/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *ProfileAPI) UpdateProfile(ctx context.Context, sessionID string, update ports.BasicProfileUpdate) error {
	return a.gw.Do(ctx, sessionID, http.MethodPut, "/profile/me", update, nil)
}

func (a *ProfileAPI) GetPersonalInfo(ctx context.Context, sessionID string) (*ports.PersonalInfo, error) {
	var pii ports.PersonalInfo
	if err := a.gw.Do(ctx, sessionID, http.MethodGet, "/profile/me/pii", nil, &pii); err != nil {
		return nil, err
	}
	return &pii, nil
}

func (a *ProfileAPI) UpdatePersonalInfo(ctx context.Context, sessionID string, update ports.PersonalInfoUpdate) error {
	return a.gw.Do(ctx, sessionID, http.MethodPut, "/profile/me/pii", update, nil)
}

// roleStatusResponse is shared by the fighter and coach endpoints.
type roleStatusResponse struct {
	Status string `json:"status"`
}

func (a *ProfileAPI) RoleStatus(ctx context.Context, sessionID string, role domain.Role) (string, error) {
	path := "/fighter/me"
	if role == domain.RoleMedic {
		path = "/coach/me"
	}

	var status roleStatusResponse
	if err := a.gw.Do(ctx, sessionID, http.MethodGet, path, nil, &status); err != nil {
		return "", err
	}
	return status.Status, nil
}

func (a *ProfileAPI) Personalise(ctx context.Context, sessionID string, prefs map[string]string) error {
	return a.gw.Do(ctx, sessionID, http.MethodPut, "/profile/me/personalise", prefs, nil)
}
