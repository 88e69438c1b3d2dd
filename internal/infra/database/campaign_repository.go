package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO campaigns (id, name, type, template_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
		c.ID, c.Name, c.Type, c.TemplateID, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	var c entity.Campaign
	var templateID sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, type, template_id, status, created_at, updated_at
		 FROM campaigns WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Type, &templateID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	c.TemplateID = templateID.String
	return &c, nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]*entity.Campaign, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, type, template_id, status, created_at, updated_at
		 FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		var templateID sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &templateID, &c.Status,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.TemplateID = templateID.String
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id string, status entity.CampaignStatus) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE campaigns SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	return err
}

// Enroll inserts one pending unit per contact. The unique
// (campaign_id, contact_id) key plus DO NOTHING makes re-enrollment a no-op.
func (r *CampaignRepository) Enroll(ctx context.Context, campaignID string, contactIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, contactID := range contactIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO campaign_emails (id, campaign_id, contact_id, status, created_at)
			 VALUES ($1, $2, $3, $4, NOW())
			 ON CONFLICT (campaign_id, contact_id) DO NOTHING`,
			uuid.New().String(), campaignID, contactID, entity.EmailPending,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const campaignEmailColumns = `id, campaign_id, contact_id, status, COALESCE(bounce_reason, ''), sent_at, created_at`

func (r *CampaignRepository) ListEmails(ctx context.Context, campaignID string) ([]*entity.CampaignEmail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+campaignEmailColumns+`
		 FROM campaign_emails WHERE campaign_id = $1 ORDER BY created_at, id`,
		campaignID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCampaignEmails(rows)
}

// SelectPending returns up to limit pending units in insertion order.
func (r *CampaignRepository) SelectPending(ctx context.Context, campaignID string, limit int) ([]*entity.CampaignEmail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+campaignEmailColumns+`
		 FROM campaign_emails
		 WHERE campaign_id = $1 AND status = $2
		 ORDER BY created_at, id
		 LIMIT $3`,
		campaignID, entity.EmailPending, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCampaignEmails(rows)
}

func (r *CampaignRepository) CountPending(ctx context.Context, campaignID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM campaign_emails WHERE campaign_id = $1 AND status = $2`,
		campaignID, entity.EmailPending,
	).Scan(&count)
	return count, err
}

// MarkSent transitions a unit pending→sent. The status guard in the WHERE
// clause makes the transition atomic: the second of two racing dispatchers
// sees zero rows affected and reports claimed=false.
func (r *CampaignRepository) MarkSent(ctx context.Context, emailID string, sentAt time.Time) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE campaign_emails SET status = $2, sent_at = $3
		 WHERE id = $1 AND status = $4`,
		emailID, entity.EmailSent, sentAt, entity.EmailPending,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CampaignRepository) MarkBounced(ctx context.Context, emailID string, reason entity.BounceReason) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE campaign_emails SET status = $2, bounce_reason = $3
		 WHERE id = $1 AND status = $4`,
		emailID, entity.EmailBounced, reason, entity.EmailPending,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CampaignRepository) DeleteEmailsByContact(ctx context.Context, contactID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM campaign_emails WHERE contact_id = $1`, contactID)
	return err
}

func scanCampaignEmails(rows *sql.Rows) ([]*entity.CampaignEmail, error) {
	var emails []*entity.CampaignEmail
	for rows.Next() {
		var e entity.CampaignEmail
		var sentAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.CampaignID, &e.ContactID, &e.Status,
			&e.BounceReason, &sentAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		if sentAt.Valid {
			e.SentAt = &sentAt.Time
		}
		emails = append(emails, &e)
	}
	return emails, rows.Err()
}
