package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityFormSubmit    ActivityType = "form_submit"
	ActivityEmailSent     ActivityType = "email_sent"
	ActivityEmailReceived ActivityType = "email_received"
	ActivityNote          ActivityType = "note"
	ActivityCall          ActivityType = "call"
	ActivityMeeting       ActivityType = "meeting"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityFormSubmit, ActivityEmailSent, ActivityEmailReceived,
		ActivityNote, ActivityCall, ActivityMeeting:
		return true
	}
	return false
}

// ContactActivity is an append-only event on a contact's timeline. Rows are
// never updated or deleted; they are the audit trail for what was sent to whom.
type ContactActivity struct {
	ID        string            `json:"id"`
	ContactID string            `json:"contact_id"`
	Type      ActivityType      `json:"type"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewContactActivity(contactID string, activityType ActivityType, metadata map[string]string) (*ContactActivity, error) {
	if contactID == "" {
		return nil, errors.New("contact_id is required")
	}
	if !activityType.Valid() {
		return nil, errors.New("invalid activity type")
	}

	return &ContactActivity{
		ID:        uuid.New().String(),
		ContactID: contactID,
		Type:      activityType,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}, nil
}

type ActivityRepositoryInterface interface {
	Append(ctx context.Context, activity *ContactActivity) error
	ListByContact(ctx context.Context, contactID string) ([]*ContactActivity, error)
	DeleteByContact(ctx context.Context, contactID string) error
}
