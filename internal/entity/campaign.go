package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type CampaignType string

const (
	CampaignCold       CampaignType = "cold"
	CampaignNewsletter CampaignType = "newsletter"
)

type CampaignStatus string

// Campaign status is recomputed from the pending-unit count on every dispatch
// pass that makes progress, not transitioned once. Topping up a completed
// campaign moves it back to sending on the next productive pass.
const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignSending   CampaignStatus = "sending"
	CampaignCompleted CampaignStatus = "completed"
)

type Campaign struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       CampaignType   `json:"type"`
	TemplateID string         `json:"template_id,omitempty"`
	Status     CampaignStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func NewCampaign(name string, campaignType CampaignType, templateID string) (*Campaign, error) {
	campaign := &Campaign{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       campaignType,
		TemplateID: templateID,
		Status:     CampaignDraft,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := campaign.Validate(); err != nil {
		return nil, err
	}

	return campaign, nil
}

func (c *Campaign) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Type != CampaignCold && c.Type != CampaignNewsletter {
		return errors.New("type must be cold or newsletter")
	}
	return nil
}

type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailBounced EmailStatus = "bounced"
)

// BounceReason disambiguates the two situations that share the bounced status:
// the recipient was suppressed at send time, or the transport hard-failed.
type BounceReason string

const (
	BounceSuppressed BounceReason = "suppressed"
	BounceTransport  BounceReason = "transport"
)

// CampaignEmail is the atomic unit of delivery: one row per (campaign, contact).
// pending is the only retryable state; sent and bounced are terminal.
type CampaignEmail struct {
	ID           string       `json:"id"`
	CampaignID   string       `json:"campaign_id"`
	ContactID    string       `json:"contact_id"`
	Status       EmailStatus  `json:"status"`
	BounceReason BounceReason `json:"bounce_reason,omitempty"`
	SentAt       *time.Time   `json:"sent_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context) ([]*Campaign, error)
	UpdateStatus(ctx context.Context, id string, status CampaignStatus) error

	// Enroll inserts one pending unit per contact, skipping contacts already
	// enrolled in the campaign. Re-enrollment is a no-op, never a duplicate.
	Enroll(ctx context.Context, campaignID string, contactIDs []string) error
	ListEmails(ctx context.Context, campaignID string) ([]*CampaignEmail, error)
	SelectPending(ctx context.Context, campaignID string, limit int) ([]*CampaignEmail, error)
	CountPending(ctx context.Context, campaignID string) (int, error)

	// MarkSent and MarkBounced succeed only while the unit is still pending and
	// report whether the transition happened, so two racing dispatchers cannot
	// both claim the same unit.
	MarkSent(ctx context.Context, emailID string, sentAt time.Time) (bool, error)
	MarkBounced(ctx context.Context, emailID string, reason BounceReason) (bool, error)

	DeleteEmailsByContact(ctx context.Context, contactID string) error
}
