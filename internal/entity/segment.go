package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSegmentNotFound = errors.New("segment not found")

// Segment is a named, colored cohort of contacts. Membership is a pure
// many-to-many join with no ordering semantics.
type Segment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSegment(name, color string) (*Segment, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}

	return &Segment{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}, nil
}

// SetContactSegments and BulkAddToSegments have deliberately different
// contracts: the first replaces the full membership set for one contact, the
// second is purely additive across many contacts (import path). They must stay
// separate operations.
type SegmentRepositoryInterface interface {
	Create(ctx context.Context, s *Segment) error
	FindByID(ctx context.Context, id string) (*Segment, error)
	List(ctx context.Context) ([]*Segment, error)
	Delete(ctx context.Context, id string) error
	SetContactSegments(ctx context.Context, contactID string, segmentIDs []string) error
	BulkAddToSegments(ctx context.Context, contactIDs, segmentIDs []string) error
	ListContactIDs(ctx context.Context, segmentID string) ([]string, error)
	DeleteMembershipsByContact(ctx context.Context, contactID string) error
}
