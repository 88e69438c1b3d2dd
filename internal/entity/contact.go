package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrContactNotFound    = errors.New("contact not found")
	ErrEmailAlreadyExists = errors.New("a contact with this email already exists")
)

type ContactStatus string

const (
	StatusNewLead     ContactStatus = "new_lead"
	StatusContacted   ContactStatus = "contacted"
	StatusEngaged     ContactStatus = "engaged"
	StatusQualified   ContactStatus = "qualified"
	StatusNegotiation ContactStatus = "negotiation"
	StatusConverted   ContactStatus = "converted"
	StatusDormant     ContactStatus = "dormant"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case StatusNewLead, StatusContacted, StatusEngaged, StatusQualified,
		StatusNegotiation, StatusConverted, StatusDormant:
		return true
	}
	return false
}

type Contact struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	CountryCode  string        `json:"country_code,omitempty"`
	Company      string        `json:"company,omitempty"`
	Source       string        `json:"source,omitempty"`
	Status       ContactStatus `json:"status"`
	Tags         []string      `json:"tags"`
	DoNotContact bool          `json:"do_not_contact"`
	Unsubscribed bool          `json:"unsubscribed"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewContact normalizes the email to lower case; the email is the natural key
// and uniqueness is case-insensitive.
func NewContact(email, name, source string) (*Contact, error) {
	contact := &Contact{
		ID:        uuid.New().String(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      strings.TrimSpace(name),
		Source:    source,
		Status:    StatusNewLead,
		Tags:      []string{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

func (c *Contact) Validate() error {
	if c.Email == "" {
		return errors.New("email is required")
	}
	if !c.Status.Valid() {
		return errors.New("invalid contact status")
	}
	return nil
}

// Suppressed reports whether any outbound email to this contact is blocked.
// The flags are only ever cleared by an explicit operator update.
func (c *Contact) Suppressed() bool {
	return c.DoNotContact || c.Unsubscribed
}

// FirstName is the first whitespace-separated field of the display name,
// empty when the contact has no name.
func (c *Contact) FirstName() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *Contact) error
	Upsert(ctx context.Context, c *Contact) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	Update(ctx context.Context, c *Contact) error
	UpdateStatus(ctx context.Context, id string, status ContactStatus) error
	SetSuppression(ctx context.Context, id string, doNotContact, unsubscribed bool) error
	List(ctx context.Context) ([]*Contact, error)
	Delete(ctx context.Context, id string) error
}
