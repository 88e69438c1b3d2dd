package usecase

import "github.com/oakline-studio/crm-backend/internal/entity"

type CreateCampaignInput struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	TemplateID string `json:"template_id,omitempty"`
	Actor      string `json:"-"`
}

type CreateCampaignOutput struct {
	Campaign *entity.Campaign `json:"campaign"`
}

type SendBatchInput struct {
	CampaignID string `json:"campaign_id"`
	Actor      string `json:"-"`
}

// SendBatchOutput reports partial progress: Sent may be non-zero while Errors
// is non-empty. The caller treats the pass as clean iff Errors is empty.
type SendBatchOutput struct {
	Sent   int      `json:"sent"`
	Errors []string `json:"errors"`
}

type CaptureContactInput struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Message string `json:"message,omitempty"`
	Source  string `json:"-"`
}

type CaptureContactOutput struct {
	ContactID string `json:"contact_id"`
}
