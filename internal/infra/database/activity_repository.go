package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type ActivityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// Append is the only write path; activity rows are never updated.
func (r *ActivityRepository) Append(ctx context.Context, activity *entity.ContactActivity) error {
	metadata, err := json.Marshal(activity.Metadata)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO contact_activities (id, contact_id, type, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		activity.ID, activity.ContactID, activity.Type, metadata, activity.CreatedAt,
	)
	return err
}

func (r *ActivityRepository) ListByContact(ctx context.Context, contactID string) ([]*entity.ContactActivity, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, contact_id, type, metadata, created_at
		 FROM contact_activities
		 WHERE contact_id = $1
		 ORDER BY created_at DESC`,
		contactID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*entity.ContactActivity
	for rows.Next() {
		var a entity.ContactActivity
		var metadata []byte
		if err := rows.Scan(&a.ID, &a.ContactID, &a.Type, &metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
				return nil, err
			}
		}
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

// DeleteByContact exists only for the contact hard-delete cascade.
func (r *ActivityRepository) DeleteByContact(ctx context.Context, contactID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM contact_activities WHERE contact_id = $1`, contactID)
	return err
}
