package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ringsidehq/member-portal/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository persists the portal audit trail. Sign-ins, medical record
// mutations, and pass views land here; the mock medical data itself never
// does.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Actor     string `bson:"actor,omitempty"`
	Action    string `bson:"action"`
	SubjectID string `bson:"subject_id,omitempty"`
	Detail    string `bson:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Record(ctx context.Context, event *domain.AuditEvent) error {
	doc := auditDoc{
		Actor:     event.Actor,
		Action:    event.Action,
		SubjectID: event.SubjectID,
		Detail:    event.Detail,
		Timestamp: event.Timestamp.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
