package ports

import (
	"context"

	"github.com/ringsidehq/member-portal/internal/core/domain"
)

// AddEntryInput describes a new medical history entry. Author fields default
// to a placeholder when empty.
type AddEntryInput struct {
	EntryType  domain.EntryType
	Notes      string
	AuthorName string
	AuthorID   string
}

// MedicalService is the medical-records surface. The current implementation
// is an in-memory stand-in for a backend that does not exist yet; the
// interface is what a real client would implement later.
type MedicalService interface {
	// GetRecord returns the subject's record, synthesizing a deterministic
	// placeholder for subjects never seen before. It never reports not-found.
	GetRecord(ctx context.Context, subjectID string) (*domain.MedicalRecord, error)

	// AddEntry appends an immutable entry and returns the recomputed record.
	AddEntry(ctx context.Context, subjectID string, input AddEntryInput) (*domain.MedicalRecord, error)

	// SetSuspension replaces the subject's suspension slot wholesale, or
	// clears it when suspension is nil, and returns the recomputed record.
	SetSuspension(ctx context.Context, subjectID string, suspension *domain.Suspension) (*domain.MedicalRecord, error)
}
