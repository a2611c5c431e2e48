package domain

import (
	"errors"
	"time"
)

var ErrUnknownEntryType = errors.New("unknown medical entry type")

// EntryType classifies a medical history entry.
type EntryType string

const (
	EntryPreFightCheck     EntryType = "pre_fight_check"
	EntryInjuryAssessment  EntryType = "injury_assessment"
	EntryMedicalClearance  EntryType = "medical_clearance"
	EntrySuspensionIssued  EntryType = "suspension_issued"
	EntrySuspensionCleared EntryType = "suspension_cleared"
	EntryNote              EntryType = "note"
)

var entryTypes = map[EntryType]struct{}{
	EntryPreFightCheck:     {},
	EntryInjuryAssessment:  {},
	EntryMedicalClearance:  {},
	EntrySuspensionIssued:  {},
	EntrySuspensionCleared: {},
	EntryNote:              {},
}

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	_, ok := entryTypes[t]
	return ok
}

// MedicalEntry is one immutable line in a subject's medical history. There is
// no edit or delete operation: records are append-only per subject.
type MedicalEntry struct {
	ID         string    `json:"id"`
	EntryType  EntryType `json:"entry_type"`
	Notes      string    `json:"notes"`
	AuthorName string    `json:"author_name"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Suspension is the single mutable suspension slot a subject carries. Setting
// or clearing replaces the whole record; no history of past suspensions is
// kept here.
type Suspension struct {
	Active    bool       `json:"active"`
	Reason    string     `json:"reason"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IssuedBy  string     `json:"issued_by"`
	Notes     string     `json:"notes,omitempty"`
}

// SubjectProfile is the placeholder identity attached to a medical record.
// For subjects the store has never seen it is synthesized deterministically
// from the subject id.
type SubjectProfile struct {
	ID          string `json:"id"`
	MemberCode  string `json:"member_code"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Sex         string `json:"sex"`
	RoleStatus  string `json:"role_status"`
}

// MedicalRecord is the full per-subject view returned by every store
// operation: profile, history newest-first, and the optional suspension.
type MedicalRecord struct {
	Profile    SubjectProfile `json:"profile"`
	History    []MedicalEntry `json:"history"`
	Suspension *Suspension    `json:"suspension,omitempty"`
}
