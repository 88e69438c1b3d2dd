package usecase

// DomainError is a business-rule failure the caller can act on (4xx-shaped):
// bad input, missing campaign/template, exhausted hourly capacity.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (5xx-shaped): database writes,
// unconfigured transport.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeCampaignNotFound     = "CAMPAIGN_NOT_FOUND"
	CodeTemplateNotFound     = "TEMPLATE_NOT_FOUND"
	CodeTemplateNotSet       = "TEMPLATE_NOT_SET"
	CodeContactNotFound      = "CONTACT_NOT_FOUND"
	CodeSegmentNotFound      = "SEGMENT_NOT_FOUND"
	CodeRateLimited          = "RATE_LIMITED"
	CodeDatabase             = "DATABASE_ERROR"
	CodeTransportUnavailable = "TRANSPORT_UNCONFIGURED"
)
