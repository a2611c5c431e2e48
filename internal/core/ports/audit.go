package ports

import (
	"context"

	"github.com/ringsidehq/member-portal/internal/core/domain"
)

// AuditRecorder persists portal audit events. Recording is best-effort:
// callers log failures and carry on.
type AuditRecorder interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
}

// NopAuditRecorder discards events. Used in tests and demo mode.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(context.Context, *domain.AuditEvent) error { return nil }
