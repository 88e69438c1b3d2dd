package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

func TestEnrollContacts(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	audit := &MockAuditRecorder{}

	campaigns.On("FindByID", mock.Anything, "camp-1").Return(&entity.Campaign{ID: "camp-1"}, nil)
	campaigns.On("Enroll", mock.Anything, "camp-1", []string{"a", "b"}).Return(nil)

	uc := NewEnrollContactsUseCase(campaigns, new(MockSegmentRepository), audit)
	err := uc.AddContacts(context.Background(), "camp-1", []string{"a", "b"}, "ops@oakline.studio")

	assert.NoError(t, err)
	campaigns.AssertExpectations(t)
	assert.Len(t, audit.Events, 1)
	assert.Equal(t, "campaign.enroll", audit.Events[0].Action)
}

func TestEnrollContactsEmptyList(t *testing.T) {
	campaigns := new(MockCampaignRepository)

	uc := NewEnrollContactsUseCase(campaigns, new(MockSegmentRepository), nil)
	err := uc.AddContacts(context.Background(), "camp-1", nil, "")

	assert.NoError(t, err)
	campaigns.AssertNotCalled(t, "Enroll", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrollContactsCampaignMissing(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrCampaignNotFound)

	uc := NewEnrollContactsUseCase(campaigns, new(MockSegmentRepository), nil)
	err := uc.AddContacts(context.Background(), "ghost", []string{"a"}, "")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeCampaignNotFound, domainErr.Code)
}

func TestEnrollSegmentExpandsMembership(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	segments := new(MockSegmentRepository)

	segments.On("FindByID", mock.Anything, "seg-1").Return(&entity.Segment{ID: "seg-1"}, nil)
	segments.On("ListContactIDs", mock.Anything, "seg-1").Return([]string{"a", "b", "c"}, nil)
	campaigns.On("FindByID", mock.Anything, "camp-1").Return(&entity.Campaign{ID: "camp-1"}, nil)
	campaigns.On("Enroll", mock.Anything, "camp-1", []string{"a", "b", "c"}).Return(nil)

	uc := NewEnrollContactsUseCase(campaigns, segments, nil)
	err := uc.AddSegment(context.Background(), "camp-1", "seg-1", "ops@oakline.studio")

	assert.NoError(t, err)
	campaigns.AssertExpectations(t)
}

func TestEnrollSegmentMissing(t *testing.T) {
	segments := new(MockSegmentRepository)
	segments.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrSegmentNotFound)

	uc := NewEnrollContactsUseCase(new(MockCampaignRepository), segments, nil)
	err := uc.AddSegment(context.Background(), "camp-1", "ghost", "")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeSegmentNotFound, domainErr.Code)
}
