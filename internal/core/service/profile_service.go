package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ringsidehq/member-portal/internal/api/metrics"
	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// ProfileService merges the backend's three profile resources into one
// unified view and splits partial edits back into the correct resource calls.
type ProfileService struct {
	api ports.ProfileAPI
	log zerolog.Logger
}

func NewProfileService(api ports.ProfileAPI, log zerolog.Logger) *ProfileService {
	return &ProfileService{api: api, log: log}
}

// FetchFullProfile assembles the unified profile. The base profile fetch is
// sequential and fatal — role derivation decides which role-status endpoint
// to hit. The personal-info and role-status fetches then run concurrently
// with each other, and either may fail without aborting the merge: the
// affected fields are simply left absent.
func (s *ProfileService) FetchFullProfile(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	base, err := s.api.GetProfile(ctx, sessionID)
	if err != nil {
		metrics.ProfileFetchesTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	role := domain.DeriveRole(base.Scopes)

	var (
		wg         sync.WaitGroup
		pii        *ports.PersonalInfo
		piiErr     error
		roleStatus string
		statusErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		pii, piiErr = s.api.GetPersonalInfo(ctx, sessionID)
	}()
	go func() {
		defer wg.Done()
		roleStatus, statusErr = s.api.RoleStatus(ctx, sessionID, role)
	}()
	wg.Wait()

	partial := false
	if piiErr != nil {
		partial = true
		s.log.Warn().Err(piiErr).Msg("personal info fetch failed, merging without it")
	}
	if statusErr != nil {
		partial = true
		s.log.Warn().Err(statusErr).Str("role", string(role)).Msg("role status fetch failed, merging without it")
	}

	profile := &domain.UserProfile{
		ID:             base.ID,
		MemberCode:     base.MemberCode,
		Name:           base.Name,
		Email:          base.Email,
		Mobile:         base.Mobile,
		EmailVerified:  base.EmailVerified,
		MobileVerified: base.MobileVerified,
		Scopes:         base.Scopes,
		Role:           role,
	}
	if piiErr == nil && pii != nil {
		profile.DateOfBirth = pii.DateOfBirth
		profile.Sex = pii.Sex
		profile.Addresses = domain.ToDisplayList(pii.Addresses)
		profile.EmergencyContacts = domain.ToDisplayList(pii.EmergencyContacts)
	}
	if statusErr == nil {
		profile.RoleStatus = roleStatus
	}

	if partial {
		metrics.ProfileFetchesTotal.WithLabelValues("partial").Inc()
	} else {
		metrics.ProfileFetchesTotal.WithLabelValues("success").Inc()
	}

	return profile, nil
}

// ApplyProfileUpdate splits the partial edit into a basic-info update and a
// personal-info update, issuing each only when it carries at least one field.
// A failed basic-info update aborts before the personal-info call. The
// authoritative merged profile is re-fetched afterwards.
func (s *ProfileService) ApplyProfileUpdate(ctx context.Context, sessionID string, update ports.ProfileUpdateInput) (*domain.UserProfile, error) {
	basic := ports.BasicProfileUpdate{
		Name:   update.Name,
		Email:  update.Email,
		Mobile: update.Mobile,
	}
	if !basic.Empty() {
		if err := s.api.UpdateProfile(ctx, sessionID, basic); err != nil {
			return nil, err
		}
	}

	personal := ports.PersonalInfoUpdate{
		DateOfBirth: update.DateOfBirth,
		Sex:         update.Sex,
	}
	if update.Addresses != nil {
		personal.Addresses = requestList(*update.Addresses, true)
	}
	if update.EmergencyContacts != nil {
		personal.EmergencyContacts = requestList(*update.EmergencyContacts, false)
	}
	if !personal.Empty() {
		if err := s.api.UpdatePersonalInfo(ctx, sessionID, personal); err != nil {
			return nil, err
		}
	}

	return s.FetchFullProfile(ctx, sessionID)
}

// Personalise forwards display preferences unchanged.
func (s *ProfileService) Personalise(ctx context.Context, sessionID string, prefs map[string]string) error {
	return s.api.Personalise(ctx, sessionID, prefs)
}

// requestList converts display strings to the backend's structured shape.
// The caller supplied the field, so an empty input must serialize as an
// explicit empty list (clear upstream) rather than being omitted.
func requestList(display []string, address bool) *[]domain.ContactValue {
	list := domain.ToRequestList(display, address)
	if list == nil {
		list = []domain.ContactValue{}
	}
	return &list
}
