package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oakline-studio/crm-backend/internal/entity"
	"github.com/oakline-studio/crm-backend/internal/metrics"
	"github.com/oakline-studio/crm-backend/internal/render"
)

// dispatchBatchSize caps how many pending units one call drains. Small on
// purpose: a single trigger cannot blow the hourly budget, and a failing batch
// in one campaign does not starve the others.
const dispatchBatchSize = 10

const (
	dispatchScope = "campaign_dispatch"
	dispatchKey   = "global"
)

type SendBatchUseCase struct {
	Campaigns  entity.CampaignRepositoryInterface
	Contacts   entity.ContactRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	Templates  entity.TemplateRepositoryInterface
	Transport  EmailTransport
	Limiter    RateLimiter
	Audit      AuditRecorder
	Log        *zap.Logger

	FromAddress      string
	MaxEmailsPerHour int

	// One mutex per campaign id serializes concurrent dispatch triggers on the
	// same campaign. The conditional MarkSent/MarkBounced transitions are the
	// second line of defense should two processes ever share the table.
	locks sync.Map
}

func NewSendBatchUseCase(
	campaigns entity.CampaignRepositoryInterface,
	contacts entity.ContactRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
	templates entity.TemplateRepositoryInterface,
	transport EmailTransport,
	limiter RateLimiter,
	audit AuditRecorder,
	log *zap.Logger,
	fromAddress string,
	maxEmailsPerHour int,
) *SendBatchUseCase {
	return &SendBatchUseCase{
		Campaigns:        campaigns,
		Contacts:         contacts,
		Activities:       activities,
		Templates:        templates,
		Transport:        transport,
		Limiter:          limiter,
		Audit:            audit,
		Log:              log,
		FromAddress:      fromAddress,
		MaxEmailsPerHour: maxEmailsPerHour,
	}
}

func (uc *SendBatchUseCase) lockFor(campaignID string) *sync.Mutex {
	v, _ := uc.locks.LoadOrStore(campaignID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Execute runs one bounded dispatch pass over a campaign's pending units.
// Infra-level failures (missing campaign/template, exhausted capacity) fail
// the whole call before any unit is touched; per-recipient failures are
// collected in the output and never abort the batch.
func (uc *SendBatchUseCase) Execute(ctx context.Context, input SendBatchInput) (*SendBatchOutput, error) {
	mu := uc.lockFor(input.CampaignID)
	mu.Lock()
	defer mu.Unlock()

	if uc.Transport == nil {
		return nil, &TechnicalError{
			Code:    CodeTransportUnavailable,
			Message: "email transport is not configured",
		}
	}

	campaign, err := uc.Campaigns.FindByID(ctx, input.CampaignID)
	if err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			return nil, &DomainError{Code: CodeCampaignNotFound, Message: "campaign not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load campaign: " + err.Error()}
	}

	if campaign.TemplateID == "" {
		return nil, &DomainError{
			Code:    CodeTemplateNotSet,
			Message: "campaign has no template assigned",
		}
	}

	template, err := uc.Templates.FindByID(ctx, campaign.TemplateID)
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			return nil, &DomainError{Code: CodeTemplateNotFound, Message: "campaign template not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load template: " + err.Error()}
	}

	if uc.Limiter.Remaining(dispatchKey, dispatchScope, uc.MaxEmailsPerHour, time.Hour) == 0 {
		metrics.DispatchRejections.Inc()
		return nil, &DomainError{
			Code:    CodeRateLimited,
			Message: fmt.Sprintf("hourly send limit of %d reached, retry later", uc.MaxEmailsPerHour),
		}
	}

	batchSize := min(dispatchBatchSize, uc.MaxEmailsPerHour)

	units, err := uc.Campaigns.SelectPending(ctx, campaign.ID, batchSize)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to select pending emails: " + err.Error()}
	}

	// Nothing to do is a valid terminal outcome, not an error, and must not
	// touch the campaign status.
	if len(units) == 0 {
		return &SendBatchOutput{Sent: 0, Errors: []string{}}, nil
	}

	output := &SendBatchOutput{Errors: []string{}}

	for _, unit := range units {
		contact, err := uc.Contacts.FindByID(ctx, unit.ContactID)
		if errors.Is(err, entity.ErrContactNotFound) {
			// Dangling unit: leave it pending, it will surface again next pass.
			uc.Log.Warn("campaign email references missing contact",
				zap.String("campaign_id", campaign.ID),
				zap.String("contact_id", unit.ContactID),
			)
			continue
		}
		if err != nil {
			// A lookup failure is not a missing contact; surface it so a
			// mid-batch outage is visible to the operator.
			output.Errors = append(output.Errors, "contact "+unit.ContactID+": "+err.Error())
			uc.Log.Error("failed to load contact for dispatch",
				zap.String("campaign_id", campaign.ID),
				zap.String("contact_id", unit.ContactID),
				zap.Error(err),
			)
			continue
		}

		if contact.Suppressed() {
			claimed, err := uc.Campaigns.MarkBounced(ctx, unit.ID, entity.BounceSuppressed)
			if err != nil {
				uc.Log.Error("failed to mark suppressed unit bounced",
					zap.String("email_id", unit.ID), zap.Error(err))
			}
			if claimed {
				metrics.EmailsBounced.WithLabelValues(string(entity.BounceSuppressed)).Inc()
			}
			continue
		}

		vars := render.ContactVars(contact)
		subject := render.Interpolate(template.Subject, vars)
		body := render.Interpolate(template.Body, vars)

		if !uc.Limiter.Check(dispatchKey, dispatchScope, uc.MaxEmailsPerHour, time.Hour).Allowed {
			// Budget ran out mid-batch; the rest of the slice stays pending.
			output.Errors = append(output.Errors, contact.Email+": hourly send limit reached")
			break
		}

		if err := uc.Transport.Send(ctx, uc.FromAddress, contact.Email, subject, body); err != nil {
			output.Errors = append(output.Errors, contact.Email+": "+err.Error())
			metrics.EmailSendErrors.Inc()
			uc.Log.Warn("transport rejected email",
				zap.String("campaign_id", campaign.ID),
				zap.String("to", contact.Email),
				zap.Error(err),
			)
			continue
		}

		claimed, err := uc.Campaigns.MarkSent(ctx, unit.ID, time.Now())
		if err != nil {
			output.Errors = append(output.Errors, contact.Email+": "+err.Error())
			continue
		}
		if !claimed {
			// Another dispatcher already settled this unit.
			continue
		}

		output.Sent++
		metrics.EmailsSent.Inc()

		// The activity row is the only persistent record that this message
		// reached this contact.
		activity, actErr := entity.NewContactActivity(contact.ID, entity.ActivityEmailSent, map[string]string{
			"campaign_id":   campaign.ID,
			"campaign_name": campaign.Name,
			"subject":       subject,
		})
		if actErr == nil {
			actErr = uc.Activities.Append(ctx, activity)
		}
		if actErr != nil {
			uc.Log.Error("failed to append email_sent activity",
				zap.String("contact_id", contact.ID), zap.Error(actErr))
		}
	}

	// Only a pass that made progress may move the status; a fully stuck batch
	// leaves the campaign as-is.
	if output.Sent > 0 {
		pending, err := uc.Campaigns.CountPending(ctx, campaign.ID)
		if err != nil {
			return output, &TechnicalError{Code: CodeDatabase, Message: "failed to count pending emails: " + err.Error()}
		}

		status := entity.CampaignSending
		if pending == 0 {
			status = entity.CampaignCompleted
		}
		if err := uc.Campaigns.UpdateStatus(ctx, campaign.ID, status); err != nil {
			return output, &TechnicalError{Code: CodeDatabase, Message: "failed to update campaign status: " + err.Error()}
		}
	}

	if uc.Audit != nil {
		uc.Audit.Record(ctx, AuditEvent{
			Actor:        input.Actor,
			Action:       "campaign.dispatch",
			ResourceType: "campaign",
			ResourceID:   campaign.ID,
			Description:  fmt.Sprintf("dispatched batch: %d sent, %d errors", output.Sent, len(output.Errors)),
			OccurredAt:   time.Now(),
		})
	}

	return output, nil
}
