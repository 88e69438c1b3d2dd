package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

type CreateCampaignUseCase struct {
	Campaigns entity.CampaignRepositoryInterface
	Templates entity.TemplateRepositoryInterface
	Audit     AuditRecorder
}

func NewCreateCampaignUseCase(
	campaigns entity.CampaignRepositoryInterface,
	templates entity.TemplateRepositoryInterface,
	audit AuditRecorder,
) *CreateCampaignUseCase {
	return &CreateCampaignUseCase{Campaigns: campaigns, Templates: templates, Audit: audit}
}

func (uc *CreateCampaignUseCase) Execute(ctx context.Context, input CreateCampaignInput) (*CreateCampaignOutput, error) {
	if validationErrors := ValidateCreateCampaignInput(input); len(validationErrors) > 0 {
		return nil, validationFailed(validationErrors)
	}

	// The template reference is optional at creation; dispatch refuses to run
	// without one, but a draft can exist before the template does.
	if input.TemplateID != "" {
		if _, err := uc.Templates.FindByID(ctx, input.TemplateID); err != nil {
			if errors.Is(err, entity.ErrTemplateNotFound) {
				return nil, &DomainError{Code: CodeTemplateNotFound, Message: "template not found"}
			}
			return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load template: " + err.Error()}
		}
	}

	campaign, err := entity.NewCampaign(input.Name, entity.CampaignType(input.Type), input.TemplateID)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Campaigns.Create(ctx, campaign); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to create campaign: " + err.Error()}
	}

	if uc.Audit != nil {
		uc.Audit.Record(ctx, AuditEvent{
			Actor:        input.Actor,
			Action:       "campaign.create",
			ResourceType: "campaign",
			ResourceID:   campaign.ID,
			Description:  "created campaign " + campaign.Name,
			OccurredAt:   time.Now(),
		})
	}

	return &CreateCampaignOutput{Campaign: campaign}, nil
}
