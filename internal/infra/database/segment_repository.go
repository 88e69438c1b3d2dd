package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type SegmentRepository struct {
	DB *sql.DB
}

func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{DB: db}
}

func (r *SegmentRepository) Create(ctx context.Context, s *entity.Segment) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO segments (id, name, color, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.Color, s.CreatedAt,
	)
	return err
}

func (r *SegmentRepository) FindByID(ctx context.Context, id string) (*entity.Segment, error) {
	var s entity.Segment
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM segments WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Color, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSegmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SegmentRepository) List(ctx context.Context) ([]*entity.Segment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, color, created_at FROM segments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []*entity.Segment
	for rows.Next() {
		var s entity.Segment
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.CreatedAt); err != nil {
			return nil, err
		}
		segments = append(segments, &s)
	}
	return segments, rows.Err()
}

// Delete drops the segment and its memberships; the contacts themselves are
// untouched.
func (r *SegmentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM segment_contacts WHERE segment_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM segments WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// SetContactSegments replaces the full membership set for one contact. This is
// the per-contact assignment path; the import path uses BulkAddToSegments.
func (r *SegmentRepository) SetContactSegments(ctx context.Context, contactID string, segmentIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM segment_contacts WHERE contact_id = $1`, contactID); err != nil {
		return err
	}

	for _, segmentID := range segmentIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO segment_contacts (segment_id, contact_id)
			 VALUES ($1, $2)
			 ON CONFLICT (segment_id, contact_id) DO NOTHING`,
			segmentID, contactID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BulkAddToSegments is purely additive: existing memberships are kept, the
// cross product of contacts and segments is upserted.
func (r *SegmentRepository) BulkAddToSegments(ctx context.Context, contactIDs, segmentIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, segmentID := range segmentIDs {
		for _, contactID := range contactIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO segment_contacts (segment_id, contact_id)
				 VALUES ($1, $2)
				 ON CONFLICT (segment_id, contact_id) DO NOTHING`,
				segmentID, contactID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *SegmentRepository) ListContactIDs(ctx context.Context, segmentID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT contact_id FROM segment_contacts WHERE segment_id = $1`, segmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SegmentRepository) DeleteMembershipsByContact(ctx context.Context, contactID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM segment_contacts WHERE contact_id = $1`, contactID)
	return err
}
