package usecase

import (
	"context"
	"strings"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

// CaptureContactUseCase backs the public contact form: it upserts a contact by
// email and appends a form_submit activity carrying the message.
type CaptureContactUseCase struct {
	Contacts   entity.ContactRepositoryInterface
	Activities entity.ActivityRepositoryInterface
}

func NewCaptureContactUseCase(
	contacts entity.ContactRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
) *CaptureContactUseCase {
	return &CaptureContactUseCase{Contacts: contacts, Activities: activities}
}

func (uc *CaptureContactUseCase) Execute(ctx context.Context, input CaptureContactInput) (*CaptureContactOutput, error) {
	if validationErrors := ValidateCaptureContactInput(input); len(validationErrors) > 0 {
		return nil, validationFailed(validationErrors)
	}

	contact, err := entity.NewContact(input.Email, input.Name, input.Source)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	contact.Phone = strings.TrimSpace(input.Phone)
	contact.Company = strings.TrimSpace(input.Company)

	if err := uc.Contacts.Upsert(ctx, contact); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to save contact: " + err.Error()}
	}

	activity, err := entity.NewContactActivity(contact.ID, entity.ActivityFormSubmit, map[string]string{
		"message": input.Message,
		"source":  input.Source,
	})
	if err == nil {
		err = uc.Activities.Append(ctx, activity)
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to record submission: " + err.Error()}
	}

	return &CaptureContactOutput{ContactID: contact.ID}, nil
}
