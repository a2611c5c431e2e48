package domain

import "time"

// Audit actions recorded by the portal.
const (
	AuditSignIn            = "sign_in"
	AuditSignOut           = "sign_out"
	AuditEntryAdded        = "medical_entry_added"
	AuditSuspensionSet     = "suspension_set"
	AuditSuspensionCleared = "suspension_cleared"
	AuditPassViewed        = "pass_viewed"
)

// AuditEvent is one line in the portal audit trail.
type AuditEvent struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	SubjectID string    `json:"subject_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
