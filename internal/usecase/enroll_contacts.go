package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type EnrollContactsUseCase struct {
	Campaigns entity.CampaignRepositoryInterface
	Segments  entity.SegmentRepositoryInterface
	Audit     AuditRecorder
}

func NewEnrollContactsUseCase(
	campaigns entity.CampaignRepositoryInterface,
	segments entity.SegmentRepositoryInterface,
	audit AuditRecorder,
) *EnrollContactsUseCase {
	return &EnrollContactsUseCase{Campaigns: campaigns, Segments: segments, Audit: audit}
}

// AddContacts enrolls the given contacts into the campaign. Enrollment is
// idempotent per (campaign, contact): re-adding an enrolled contact is a
// no-op, never a duplicate pending row.
func (uc *EnrollContactsUseCase) AddContacts(ctx context.Context, campaignID string, contactIDs []string, actor string) error {
	if len(contactIDs) == 0 {
		return nil
	}

	if _, err := uc.Campaigns.FindByID(ctx, campaignID); err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			return &DomainError{Code: CodeCampaignNotFound, Message: "campaign not found"}
		}
		return &TechnicalError{Code: CodeDatabase, Message: "failed to load campaign: " + err.Error()}
	}

	if err := uc.Campaigns.Enroll(ctx, campaignID, contactIDs); err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "failed to enroll contacts: " + err.Error()}
	}

	if uc.Audit != nil {
		uc.Audit.Record(ctx, AuditEvent{
			Actor:        actor,
			Action:       "campaign.enroll",
			ResourceType: "campaign",
			ResourceID:   campaignID,
			Description:  fmt.Sprintf("enrolled %d contacts", len(contactIDs)),
			OccurredAt:   time.Now(),
		})
	}

	return nil
}

// AddSegment expands the segment's membership at enrollment time and enrolls
// every member. Later changes to the segment do not touch the campaign.
func (uc *EnrollContactsUseCase) AddSegment(ctx context.Context, campaignID, segmentID string, actor string) error {
	if _, err := uc.Segments.FindByID(ctx, segmentID); err != nil {
		if errors.Is(err, entity.ErrSegmentNotFound) {
			return &DomainError{Code: CodeSegmentNotFound, Message: "segment not found"}
		}
		return &TechnicalError{Code: CodeDatabase, Message: "failed to load segment: " + err.Error()}
	}

	contactIDs, err := uc.Segments.ListContactIDs(ctx, segmentID)
	if err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "failed to expand segment: " + err.Error()}
	}

	return uc.AddContacts(ctx, campaignID, contactIDs, actor)
}
