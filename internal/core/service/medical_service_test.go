package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

func newTestMedicalService() *MedicalService {
	svc := NewMedicalService(0, ports.NopAuditRecorder{}, zerolog.Nop())
	seq := 0
	svc.newEntryID = func() string {
		seq++
		return fmt.Sprintf("entry-%03d", seq)
	}
	return svc
}

// ---------------------------------------------------------------------------
// GetRecord
// ---------------------------------------------------------------------------

func TestMedicalService_Get_UnknownSubjectSynthesizesRecord(t *testing.T) {
	svc := newTestMedicalService()

	rec, err := svc.GetRecord(context.Background(), "fighter-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Profile.ID != "fighter-9" {
		t.Errorf("profile id: expected %q, got %q", "fighter-9", rec.Profile.ID)
	}
	if rec.Profile.MemberCode != "RS-9" {
		t.Errorf("member code: expected %q, got %q", "RS-9", rec.Profile.MemberCode)
	}
	if rec.Profile.Name != "Athlete 9" {
		t.Errorf("name: expected %q, got %q", "Athlete 9", rec.Profile.Name)
	}
	if rec.History == nil || len(rec.History) != 0 {
		t.Errorf("expected empty non-nil history, got %#v", rec.History)
	}
	if rec.Suspension != nil {
		t.Errorf("expected no suspension, got %#v", rec.Suspension)
	}
}

func TestMedicalService_Get_RepeatedReadsAgree(t *testing.T) {
	svc := newTestMedicalService()

	first, _ := svc.GetRecord(context.Background(), "fighter-abc123")
	second, _ := svc.GetRecord(context.Background(), "fighter-abc123")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reads of an unseen subject must agree:\nfirst:  %#v\nsecond: %#v", first, second)
	}
	// Reading must not create stored state.
	if len(svc.subjects) != 0 {
		t.Errorf("GetRecord must not persist anything, got %d stored subjects", len(svc.subjects))
	}
}

func TestMedicalService_Get_LongSubjectIDTruncatesSuffix(t *testing.T) {
	svc := newTestMedicalService()

	rec, _ := svc.GetRecord(context.Background(), "member-1a2b3c4d5e6f")
	// Suffix caps at 6 characters.
	if rec.Profile.MemberCode != "RS-4D5E6F" {
		t.Errorf("member code: expected %q, got %q", "RS-4D5E6F", rec.Profile.MemberCode)
	}
	if rec.Profile.Name != "Athlete 4D5E6F" {
		t.Errorf("name: expected %q, got %q", "Athlete 4D5E6F", rec.Profile.Name)
	}
}

// ---------------------------------------------------------------------------
// AddEntry
// ---------------------------------------------------------------------------

func TestMedicalService_AddEntry_AppendsAndReturnsView(t *testing.T) {
	svc := newTestMedicalService()

	rec, err := svc.AddEntry(context.Background(), "fighter-9", ports.AddEntryInput{
		EntryType:  domain.EntryInjuryAssessment,
		Notes:      "Knee",
		AuthorName: "Dr Rivera",
		AuthorID:   "medic-7",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.History) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(rec.History))
	}
	entry := rec.History[0]
	if entry.EntryType != domain.EntryInjuryAssessment {
		t.Errorf("entry type: expected %q, got %q", domain.EntryInjuryAssessment, entry.EntryType)
	}
	if entry.Notes != "Knee" {
		t.Errorf("notes: expected %q, got %q", "Knee", entry.Notes)
	}
	if entry.AuthorName != "Dr Rivera" || entry.AuthorID != "medic-7" {
		t.Errorf("author: expected Dr Rivera/medic-7, got %s/%s", entry.AuthorName, entry.AuthorID)
	}
	if entry.ID == "" {
		t.Error("entry id must not be empty")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("created_at must not be zero")
	}
}

func TestMedicalService_AddEntry_UnknownType(t *testing.T) {
	svc := newTestMedicalService()

	_, err := svc.AddEntry(context.Background(), "fighter-9", ports.AddEntryInput{
		EntryType: "tarot_reading",
		Notes:     "n/a",
	})
	if !errors.Is(err, domain.ErrUnknownEntryType) {
		t.Fatalf("expected ErrUnknownEntryType, got %v", err)
	}
	if len(svc.subjects) != 0 {
		t.Errorf("rejected entry must not create state, got %d subjects", len(svc.subjects))
	}
}

func TestMedicalService_AddEntry_AuthorDefaults(t *testing.T) {
	svc := newTestMedicalService()

	rec, err := svc.AddEntry(context.Background(), "fighter-9", ports.AddEntryInput{
		EntryType: domain.EntryNote,
		Notes:     "self reported",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.History[0].AuthorName != "Portal User" {
		t.Errorf("author name: expected placeholder, got %q", rec.History[0].AuthorName)
	}
	if rec.History[0].AuthorID != "unknown" {
		t.Errorf("author id: expected placeholder, got %q", rec.History[0].AuthorID)
	}
}

func TestMedicalService_AddEntry_UniqueIDsAcrossSubjects(t *testing.T) {
	svc := newTestMedicalService()
	seen := make(map[string]bool)

	for _, subject := range []string{"fighter-1", "fighter-2", "fighter-1"} {
		rec, err := svc.AddEntry(context.Background(), subject, ports.AddEntryInput{
			EntryType: domain.EntryNote, Notes: "n",
		})
		if err != nil {
			t.Fatalf("add entry: %v", err)
		}
		id := rec.History[0].ID
		if seen[id] {
			t.Errorf("duplicate entry id %q", id)
		}
		seen[id] = true
	}
}

func TestMedicalService_AddEntry_HistoryNewestFirst(t *testing.T) {
	svc := newTestMedicalService()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	for _, notes := range []string{"first", "second", "third"} {
		if _, err := svc.AddEntry(context.Background(), "fighter-9", ports.AddEntryInput{
			EntryType: domain.EntryNote, Notes: notes,
		}); err != nil {
			t.Fatalf("add entry %q: %v", notes, err)
		}
	}

	rec, _ := svc.GetRecord(context.Background(), "fighter-9")
	if len(rec.History) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(rec.History))
	}
	want := []string{"third", "second", "first"}
	for i, notes := range want {
		if rec.History[i].Notes != notes {
			t.Errorf("history[%d]: expected %q, got %q", i, notes, rec.History[i].Notes)
		}
	}
}

func TestMedicalService_AddEntry_SubjectsAreIsolated(t *testing.T) {
	svc := newTestMedicalService()

	_, _ = svc.AddEntry(context.Background(), "fighter-1", ports.AddEntryInput{
		EntryType: domain.EntryPreFightCheck, Notes: "cleared",
	})

	other, _ := svc.GetRecord(context.Background(), "fighter-2")
	if len(other.History) != 0 {
		t.Errorf("entries must not leak across subjects, got %d", len(other.History))
	}
}

func TestMedicalService_ReturnedRecordIsACopy(t *testing.T) {
	svc := newTestMedicalService()

	rec, _ := svc.AddEntry(context.Background(), "fighter-9", ports.AddEntryInput{
		EntryType: domain.EntryNote, Notes: "original",
	})
	rec.History[0].Notes = "tampered"

	fresh, _ := svc.GetRecord(context.Background(), "fighter-9")
	if fresh.History[0].Notes != "original" {
		t.Errorf("mutating a returned record must not affect the store, got %q", fresh.History[0].Notes)
	}
}

// ---------------------------------------------------------------------------
// SetSuspension
// ---------------------------------------------------------------------------

func TestMedicalService_SetSuspension_RoundTrip(t *testing.T) {
	svc := newTestMedicalService()
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	susp := &domain.Suspension{
		Active:    true,
		Reason:    "concussion protocol",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
		IssuedBy:  "dr.rivera@example.com",
		Notes:     "30 day stand-down",
	}

	rec, err := svc.SetSuspension(context.Background(), "fighter-9", susp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Suspension == nil {
		t.Fatal("expected suspension on the returned record")
	}
	if !reflect.DeepEqual(*rec.Suspension, *susp) {
		t.Errorf("suspension round-trip mismatch:\nwant %#v\ngot  %#v", *susp, *rec.Suspension)
	}

	// Mutating the caller's struct afterwards must not reach the store.
	susp.Reason = "tampered"
	fresh, _ := svc.GetRecord(context.Background(), "fighter-9")
	if fresh.Suspension.Reason != "concussion protocol" {
		t.Errorf("store must hold its own copy, got reason %q", fresh.Suspension.Reason)
	}
}

func TestMedicalService_SetSuspension_NilClears(t *testing.T) {
	svc := newTestMedicalService()

	_, _ = svc.SetSuspension(context.Background(), "fighter-9", &domain.Suspension{
		Active: true, Reason: "failed medical",
	})

	rec, err := svc.SetSuspension(context.Background(), "fighter-9", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Suspension != nil {
		t.Errorf("expected cleared suspension, got %#v", rec.Suspension)
	}
}

func TestMedicalService_SetSuspension_PreservesHistory(t *testing.T) {
	svc := newTestMedicalService()

	_, _ = svc.AddEntry(context.Background(), "fighter-9", ports.AddEntryInput{
		EntryType: domain.EntryInjuryAssessment, Notes: "Knee",
	})
	rec, _ := svc.SetSuspension(context.Background(), "fighter-9", &domain.Suspension{
		Active: true, Reason: "knee injury",
	})

	if len(rec.History) != 1 || rec.History[0].Notes != "Knee" {
		t.Errorf("suspension change must not touch history, got %#v", rec.History)
	}
}
