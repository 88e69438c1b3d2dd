package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

func TestCreateCampaignSuccess(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	templates := new(MockTemplateRepository)
	audit := &MockAuditRecorder{}

	templates.On("FindByID", mock.Anything, "tpl-1").Return(&entity.Template{ID: "tpl-1"}, nil)
	campaigns.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Campaign) bool {
		return c.Name == "Spring launch" && c.Type == entity.CampaignNewsletter &&
			c.TemplateID == "tpl-1" && c.Status == entity.CampaignDraft
	})).Return(nil)

	uc := NewCreateCampaignUseCase(campaigns, templates, audit)
	output, err := uc.Execute(context.Background(), CreateCampaignInput{
		Name:       "Spring launch",
		Type:       "newsletter",
		TemplateID: "tpl-1",
		Actor:      "ops@oakline.studio",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, output.Campaign.ID)
	assert.Equal(t, entity.CampaignDraft, output.Campaign.Status)
	campaigns.AssertExpectations(t)

	assert.Len(t, audit.Events, 1)
	assert.Equal(t, "campaign.create", audit.Events[0].Action)
	assert.Equal(t, "ops@oakline.studio", audit.Events[0].Actor)
}

func TestCreateCampaignWithoutTemplate(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	templates := new(MockTemplateRepository)

	campaigns.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCreateCampaignUseCase(campaigns, templates, nil)
	output, err := uc.Execute(context.Background(), CreateCampaignInput{
		Name: "Cold outreach Q3",
		Type: "cold",
	})

	assert.NoError(t, err)
	assert.Empty(t, output.Campaign.TemplateID)
	// No template reference means no template lookup.
	templates.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateCampaignTemplateMissing(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	templates := new(MockTemplateRepository)
	templates.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrTemplateNotFound)

	uc := NewCreateCampaignUseCase(campaigns, templates, nil)
	output, err := uc.Execute(context.Background(), CreateCampaignInput{
		Name:       "Broken",
		Type:       "cold",
		TemplateID: "ghost",
	})

	assert.Nil(t, output)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeTemplateNotFound, domainErr.Code)
	campaigns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCampaignValidation(t *testing.T) {
	testCases := []struct {
		name  string
		input CreateCampaignInput
	}{
		{"empty name", CreateCampaignInput{Name: "", Type: "cold"}},
		{"unknown type", CreateCampaignInput{Name: "ok", Type: "drip"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewCreateCampaignUseCase(new(MockCampaignRepository), new(MockTemplateRepository), nil)
			output, err := uc.Execute(context.Background(), tc.input)

			assert.Nil(t, output)
			var domainErr *DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, CodeValidation, domainErr.Code)
		})
	}
}
