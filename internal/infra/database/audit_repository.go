package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/oakline-studio/crm-backend/internal/usecase"
)

// AuditLogRepository is the durable end of the audit pipeline: the queue
// worker drains published events into this table.
type AuditLogRepository struct {
	DB *sql.DB
}

func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

func (r *AuditLogRepository) Insert(ctx context.Context, event usecase.AuditEvent) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO audit_log
			(id, actor, action, resource_type, resource_id, description, metadata, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New().String(), event.Actor, event.Action, event.ResourceType,
		event.ResourceID, event.Description, metadata, event.OccurredAt,
	)
	return err
}
