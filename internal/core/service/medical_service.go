package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ringsidehq/member-portal/internal/api/metrics"
	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

const (
	placeholderAuthorName = "Portal User"
	placeholderAuthorID   = "unknown"
)

// subjectRecord is the stored state for one subject: an append-only entry
// list and the single mutable suspension slot.
type subjectRecord struct {
	entries    []domain.MedicalEntry
	suspension *domain.Suspension
}

// MedicalService is the in-memory stand-in for the medical-records backend.
// It lives for the process lifetime and is injected wherever records are
// needed, so swapping in a real client later is a constructor change. Echo
// serves requests concurrently, hence the RWMutex.
type MedicalService struct {
	latency time.Duration
	audit   ports.AuditRecorder
	log     zerolog.Logger

	now        func() time.Time
	newEntryID func() string

	mu       sync.RWMutex
	subjects map[string]*subjectRecord
}

func NewMedicalService(latency time.Duration, audit ports.AuditRecorder, log zerolog.Logger) *MedicalService {
	return &MedicalService{
		latency:    latency,
		audit:      audit,
		log:        log,
		now:        time.Now,
		newEntryID: uuid.NewString,
		subjects:   make(map[string]*subjectRecord),
	}
}

// GetRecord returns the subject's record. Subjects never written to before
// get a deterministic placeholder profile, an empty history, and no
// suspension — not-found is not an outcome here, only in the real backend.
func (s *MedicalService) GetRecord(_ context.Context, subjectID string) (*domain.MedicalRecord, error) {
	s.simulateLatency()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buildRecord(subjectID), nil
}

// AddEntry appends an immutable history entry and returns the freshly
// recomputed record, so ordering and the suspension slot come from the same
// source of truth as GetRecord.
func (s *MedicalService) AddEntry(ctx context.Context, subjectID string, input ports.AddEntryInput) (*domain.MedicalRecord, error) {
	if !input.EntryType.Valid() {
		return nil, domain.ErrUnknownEntryType
	}
	s.simulateLatency()

	entry := domain.MedicalEntry{
		ID:         s.newEntryID(),
		EntryType:  input.EntryType,
		Notes:      input.Notes,
		AuthorName: input.AuthorName,
		AuthorID:   input.AuthorID,
		CreatedAt:  s.now().UTC(),
	}
	if entry.AuthorName == "" {
		entry.AuthorName = placeholderAuthorName
	}
	if entry.AuthorID == "" {
		entry.AuthorID = placeholderAuthorID
	}

	s.mu.Lock()
	rec := s.subject(subjectID)
	rec.entries = append(rec.entries, entry)
	view := s.buildRecord(subjectID)
	s.mu.Unlock()

	metrics.MedicalEntriesTotal.WithLabelValues(string(entry.EntryType)).Inc()
	s.recordAudit(ctx, &domain.AuditEvent{
		Actor:     entry.AuthorName,
		Action:    domain.AuditEntryAdded,
		SubjectID: subjectID,
		Detail:    string(entry.EntryType),
	})

	return view, nil
}

// SetSuspension replaces the subject's suspension slot wholesale, or clears
// it when suspension is nil, and returns the recomputed record.
func (s *MedicalService) SetSuspension(ctx context.Context, subjectID string, suspension *domain.Suspension) (*domain.MedicalRecord, error) {
	s.simulateLatency()

	s.mu.Lock()
	rec := s.subject(subjectID)
	if suspension == nil {
		rec.suspension = nil
	} else {
		susp := *suspension
		rec.suspension = &susp
	}
	view := s.buildRecord(subjectID)
	s.mu.Unlock()

	action := domain.AuditSuspensionCleared
	label := "cleared"
	if suspension != nil {
		action = domain.AuditSuspensionSet
		label = "set"
	}
	metrics.SuspensionChangesTotal.WithLabelValues(label).Inc()
	actor := ""
	if suspension != nil {
		actor = suspension.IssuedBy
	}
	s.recordAudit(ctx, &domain.AuditEvent{Actor: actor, Action: action, SubjectID: subjectID})

	return view, nil
}

// subject returns the stored record for subjectID, creating it on first
// write. Callers must hold the write lock.
func (s *MedicalService) subject(subjectID string) *subjectRecord {
	rec, ok := s.subjects[subjectID]
	if !ok {
		rec = &subjectRecord{}
		s.subjects[subjectID] = rec
	}
	return rec
}

// buildRecord assembles the view returned by every operation: placeholder
// profile, history newest-first, suspension copy. Callers must hold at least
// the read lock.
func (s *MedicalService) buildRecord(subjectID string) *domain.MedicalRecord {
	view := &domain.MedicalRecord{
		Profile: placeholderProfile(subjectID),
		History: []domain.MedicalEntry{},
	}

	rec, ok := s.subjects[subjectID]
	if !ok {
		return view
	}

	view.History = make([]domain.MedicalEntry, len(rec.entries))
	copy(view.History, rec.entries)
	sort.SliceStable(view.History, func(i, j int) bool {
		return view.History[i].CreatedAt.After(view.History[j].CreatedAt)
	})

	if rec.suspension != nil {
		susp := *rec.suspension
		view.Suspension = &susp
	}

	return view
}

// placeholderProfile derives a stable fake identity from the subject id, so
// repeated reads of an unknown subject always agree.
func placeholderProfile(subjectID string) domain.SubjectProfile {
	suffix := subjectID
	if idx := strings.LastIndexByte(subjectID, '-'); idx >= 0 && idx < len(subjectID)-1 {
		suffix = subjectID[idx+1:]
	}
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}

	return domain.SubjectProfile{
		ID:          subjectID,
		MemberCode:  "RS-" + strings.ToUpper(suffix),
		Name:        "Athlete " + strings.ToUpper(suffix),
		DateOfBirth: "1990-01-01",
		Sex:         "unspecified",
		RoleStatus:  "active",
	}
}

func (s *MedicalService) simulateLatency() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

func (s *MedicalService) recordAudit(ctx context.Context, event *domain.AuditEvent) {
	event.Timestamp = time.Now().UTC()
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("action", event.Action).Msg("failed to record audit event")
	}
}
