package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `id, email, name, phone, country_code, company, source, status,
	tags, do_not_contact, unsubscribed, created_at, updated_at`

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts
			(id, email, name, phone, country_code, company, source, status,
			 tags, do_not_contact, unsubscribed, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Email, c.Name, c.Phone, c.CountryCode, c.Company, c.Source,
		c.Status, pq.Array(c.Tags), c.DoNotContact, c.Unsubscribed,
		c.CreatedAt, c.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}

	return nil
}

// Upsert creates the contact or, when the email already exists, refreshes the
// mutable fields and loads the stored identity back into c. Status and the
// suppression flags of an existing row are never touched here.
func (r *ContactRepository) Upsert(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts
			(id, email, name, phone, country_code, company, source, status,
			 tags, do_not_contact, unsubscribed, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name    = COALESCE(NULLIF(EXCLUDED.name, ''), contacts.name),
			phone   = COALESCE(NULLIF(EXCLUDED.phone, ''), contacts.phone),
			company = COALESCE(NULLIF(EXCLUDED.company, ''), contacts.company),
			updated_at = NOW()
		RETURNING id, status, do_not_contact, unsubscribed, created_at, updated_at
	`

	return r.DB.QueryRowContext(ctx, query,
		c.ID, c.Email, c.Name, c.Phone, c.CountryCode, c.Company, c.Source,
		c.Status, pq.Array(c.Tags), c.DoNotContact, c.Unsubscribed,
	).Scan(&c.ID, &c.Status, &c.DoNotContact, &c.Unsubscribed, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	return scanContact(row)
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE email = lower($1)`, email)
	return scanContact(row)
}

func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts SET
			name = $2, phone = $3, country_code = $4, company = $5, source = $6,
			status = $7, tags = $8, do_not_contact = $9, unsubscribed = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.Phone, c.CountryCode, c.Company, c.Source,
		c.Status, pq.Array(c.Tags), c.DoNotContact, c.Unsubscribed,
	)
	if err != nil {
		return err
	}
	return mustAffect(result)
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status entity.ContactStatus) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE contacts SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	return mustAffect(result)
}

func (r *ContactRepository) SetSuppression(ctx context.Context, id string, doNotContact, unsubscribed bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE contacts SET do_not_contact = $2, unsubscribed = $3, updated_at = NOW() WHERE id = $1`,
		id, doNotContact, unsubscribed,
	)
	if err != nil {
		return err
	}
	return mustAffect(result)
}

func (r *ContactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	err := row.Scan(
		&c.ID, &c.Email, &c.Name, &c.Phone, &c.CountryCode, &c.Company,
		&c.Source, &c.Status, pq.Array(&c.Tags), &c.DoNotContact,
		&c.Unsubscribed, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func mustAffect(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrContactNotFound
	}
	return nil
}
