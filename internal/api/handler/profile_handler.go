package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// ProfileHandler exposes the unified member profile.
type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// updateProfileRequest is a partial profile edit. Omitted fields are left
// unchanged; an explicitly empty list clears the corresponding data.
type updateProfileRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Mobile *string `json:"mobile"`

	DateOfBirth       *string   `json:"date_of_birth"`
	Sex               *string   `json:"sex"`
	Addresses         *[]string `json:"addresses"`
	EmergencyContacts *[]string `json:"emergency_contacts"`
}

// Get returns the unified profile for the signed-in member.
//
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserProfile
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile/me [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.FetchFullProfile(c.Request().Context(), claims.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update applies a partial profile edit and returns the authoritative
// re-fetched profile.
//
// @Summary      Update my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Partial profile edit"
// @Success      200   {object}  domain.UserProfile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/profile/me [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profiles.ApplyProfileUpdate(c.Request().Context(), claims.SessionID, ports.ProfileUpdateInput{
		Name:              req.Name,
		Email:             req.Email,
		Mobile:            req.Mobile,
		DateOfBirth:       req.DateOfBirth,
		Sex:               req.Sex,
		Addresses:         req.Addresses,
		EmergencyContacts: req.EmergencyContacts,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Personalise stores display preferences.
//
// @Summary      Update display preferences
// @Tags         profile
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      map[string]string  true  "Preferences"
// @Success      204   "preferences stored"
// @Failure      401   {object}  errorResponse
// @Router       /v1/profile/me/personalise [put]
func (h *ProfileHandler) Personalise(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	prefs := map[string]string{}
	if err := c.Bind(&prefs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.profiles.Personalise(c.Request().Context(), claims.SessionID, prefs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
