package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

// DeleteContactUseCase hard-deletes a contact. The stores do not cascade, so
// the referential cleanup (activity history, segment memberships, campaign
// enrollment rows) is orchestrated here, dependents first. Deletes cannot be
// compensated; a mid-sequence failure surfaces as an error with the cleanup
// partially applied, and re-running the call finishes the job.
type DeleteContactUseCase struct {
	Contacts   entity.ContactRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	Segments   entity.SegmentRepositoryInterface
	Campaigns  entity.CampaignRepositoryInterface
	Audit      AuditRecorder
}

func NewDeleteContactUseCase(
	contacts entity.ContactRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
	segments entity.SegmentRepositoryInterface,
	campaigns entity.CampaignRepositoryInterface,
	audit AuditRecorder,
) *DeleteContactUseCase {
	return &DeleteContactUseCase{
		Contacts:   contacts,
		Activities: activities,
		Segments:   segments,
		Campaigns:  campaigns,
		Audit:      audit,
	}
}

func (uc *DeleteContactUseCase) Execute(ctx context.Context, contactID, actor string) error {
	contact, err := uc.Contacts.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			return &DomainError{Code: CodeContactNotFound, Message: "contact not found"}
		}
		return &TechnicalError{Code: CodeDatabase, Message: "failed to load contact: " + err.Error()}
	}

	txn := NewTransaction()
	txn.AddOperation("delete_activities", func(ctx context.Context) error {
		return uc.Activities.DeleteByContact(ctx, contactID)
	})
	txn.AddOperation("delete_segment_memberships", func(ctx context.Context) error {
		return uc.Segments.DeleteMembershipsByContact(ctx, contactID)
	})
	txn.AddOperation("delete_campaign_emails", func(ctx context.Context) error {
		return uc.Campaigns.DeleteEmailsByContact(ctx, contactID)
	})
	txn.AddOperation("delete_contact", func(ctx context.Context) error {
		return uc.Contacts.Delete(ctx, contactID)
	})

	if err := txn.Execute(ctx); err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "failed to delete contact: " + err.Error()}
	}

	if uc.Audit != nil {
		uc.Audit.Record(ctx, AuditEvent{
			Actor:        actor,
			Action:       "contact.delete",
			ResourceType: "contact",
			ResourceID:   contactID,
			Description:  "deleted contact " + contact.Email,
			OccurredAt:   time.Now(),
		})
	}

	return nil
}
