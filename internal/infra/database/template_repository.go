package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(ctx context.Context, t *entity.Template) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO templates (id, name, subject, body, variables, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Name, t.Subject, t.Body, pq.Array(t.Variables), t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.Template, error) {
	var t entity.Template
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, subject, body, variables, created_at, updated_at
		 FROM templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Subject, &t.Body, pq.Array(&t.Variables), &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]*entity.Template, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, subject, body, variables, created_at, updated_at
		 FROM templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*entity.Template
	for rows.Next() {
		var t entity.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body,
			pq.Array(&t.Variables), &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}

// Update edits the template in place. Campaigns hold only the template id, so
// an edit affects not-yet-rendered units of any in-flight campaign.
func (r *TemplateRepository) Update(ctx context.Context, t *entity.Template) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE templates SET name = $2, subject = $3, body = $4, variables = $5, updated_at = NOW()
		 WHERE id = $1`,
		t.ID, t.Name, t.Subject, t.Body, pq.Array(t.Variables),
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id)
	return err
}
