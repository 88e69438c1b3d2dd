package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

func TestDeleteContactCascades(t *testing.T) {
	contacts := new(MockContactRepository)
	activities := new(MockActivityRepository)
	segments := new(MockSegmentRepository)
	campaigns := new(MockCampaignRepository)
	audit := &MockAuditRecorder{}

	contacts.On("FindByID", mock.Anything, "contact-1").Return(&entity.Contact{
		ID: "contact-1", Email: "ama@example.com",
	}, nil)
	activities.On("DeleteByContact", mock.Anything, "contact-1").Return(nil)
	segments.On("DeleteMembershipsByContact", mock.Anything, "contact-1").Return(nil)
	campaigns.On("DeleteEmailsByContact", mock.Anything, "contact-1").Return(nil)
	contacts.On("Delete", mock.Anything, "contact-1").Return(nil)

	uc := NewDeleteContactUseCase(contacts, activities, segments, campaigns, audit)
	err := uc.Execute(context.Background(), "contact-1", "ops@oakline.studio")

	assert.NoError(t, err)
	contacts.AssertExpectations(t)
	activities.AssertExpectations(t)
	segments.AssertExpectations(t)
	campaigns.AssertExpectations(t)

	assert.Len(t, audit.Events, 1)
	assert.Equal(t, "contact.delete", audit.Events[0].Action)
}

func TestDeleteContactNotFound(t *testing.T) {
	contacts := new(MockContactRepository)
	contacts.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrContactNotFound)

	uc := NewDeleteContactUseCase(contacts, new(MockActivityRepository),
		new(MockSegmentRepository), new(MockCampaignRepository), nil)
	err := uc.Execute(context.Background(), "ghost", "")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeContactNotFound, domainErr.Code)
	contacts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteContactStopsOnDependentFailure(t *testing.T) {
	contacts := new(MockContactRepository)
	activities := new(MockActivityRepository)
	segments := new(MockSegmentRepository)
	campaigns := new(MockCampaignRepository)

	contacts.On("FindByID", mock.Anything, "contact-1").Return(&entity.Contact{
		ID: "contact-1", Email: "ama@example.com",
	}, nil)
	activities.On("DeleteByContact", mock.Anything, "contact-1").Return(nil)
	segments.On("DeleteMembershipsByContact", mock.Anything, "contact-1").
		Return(errors.New("db down"))

	uc := NewDeleteContactUseCase(contacts, activities, segments, campaigns, nil)
	err := uc.Execute(context.Background(), "contact-1", "")

	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, CodeDatabase, techErr.Code)
	// The contact row survives when its dependents could not be removed.
	contacts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	campaigns.AssertNotCalled(t, "DeleteEmailsByContact", mock.Anything, mock.Anything)
}
