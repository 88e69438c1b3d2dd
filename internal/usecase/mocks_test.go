package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

// MockCampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]*entity.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) UpdateStatus(ctx context.Context, id string, status entity.CampaignStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCampaignRepository) Enroll(ctx context.Context, campaignID string, contactIDs []string) error {
	args := m.Called(ctx, campaignID, contactIDs)
	return args.Error(0)
}

func (m *MockCampaignRepository) ListEmails(ctx context.Context, campaignID string) ([]*entity.CampaignEmail, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CampaignEmail), args.Error(1)
}

func (m *MockCampaignRepository) SelectPending(ctx context.Context, campaignID string, limit int) ([]*entity.CampaignEmail, error) {
	args := m.Called(ctx, campaignID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CampaignEmail), args.Error(1)
}

func (m *MockCampaignRepository) CountPending(ctx context.Context, campaignID string) (int, error) {
	args := m.Called(ctx, campaignID)
	return args.Int(0), args.Error(1)
}

func (m *MockCampaignRepository) MarkSent(ctx context.Context, emailID string, sentAt time.Time) (bool, error) {
	args := m.Called(ctx, emailID, sentAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockCampaignRepository) MarkBounced(ctx context.Context, emailID string, reason entity.BounceReason) (bool, error) {
	args := m.Called(ctx, emailID, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockCampaignRepository) DeleteEmailsByContact(ctx context.Context, contactID string) error {
	args := m.Called(ctx, contactID)
	return args.Error(0)
}

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) Upsert(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateStatus(ctx context.Context, id string, status entity.ContactStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockContactRepository) SetSuppression(ctx context.Context, id string, doNotContact, unsubscribed bool) error {
	args := m.Called(ctx, id, doNotContact, unsubscribed)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Append(ctx context.Context, activity *entity.ContactActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByContact(ctx context.Context, contactID string) ([]*entity.ContactActivity, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ContactActivity), args.Error(1)
}

func (m *MockActivityRepository) DeleteByContact(ctx context.Context, contactID string) error {
	args := m.Called(ctx, contactID)
	return args.Error(0)
}

// MockTemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *entity.Template) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id string) (*entity.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Template), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]*entity.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Template), args.Error(1)
}

func (m *MockTemplateRepository) Update(ctx context.Context, t *entity.Template) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSegmentRepository
type MockSegmentRepository struct {
	mock.Mock
}

func (m *MockSegmentRepository) Create(ctx context.Context, s *entity.Segment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSegmentRepository) FindByID(ctx context.Context, id string) (*entity.Segment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Segment), args.Error(1)
}

func (m *MockSegmentRepository) List(ctx context.Context) ([]*entity.Segment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Segment), args.Error(1)
}

func (m *MockSegmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSegmentRepository) SetContactSegments(ctx context.Context, contactID string, segmentIDs []string) error {
	args := m.Called(ctx, contactID, segmentIDs)
	return args.Error(0)
}

func (m *MockSegmentRepository) BulkAddToSegments(ctx context.Context, contactIDs, segmentIDs []string) error {
	args := m.Called(ctx, contactIDs, segmentIDs)
	return args.Error(0)
}

func (m *MockSegmentRepository) ListContactIDs(ctx context.Context, segmentID string) ([]string, error) {
	args := m.Called(ctx, segmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSegmentRepository) DeleteMembershipsByContact(ctx context.Context, contactID string) error {
	args := m.Called(ctx, contactID)
	return args.Error(0)
}

// MockTransport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, from, to, subject, html string) error {
	args := m.Called(ctx, from, to, subject, html)
	return args.Error(0)
}

// MockAuditRecorder
type MockAuditRecorder struct {
	mu     sync.Mutex
	Events []AuditEvent
}

func (m *MockAuditRecorder) Record(ctx context.Context, event AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}
