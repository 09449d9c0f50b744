package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/integration/openrouter"
	"github.com/xavierca1/ligue-crm-mailer/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, name string) (*entity.Lead, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindManyByNames(ctx context.Context, names []string) ([]entity.LeadRef, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadRef), args.Error(1)
}

func (m *MockLeadRepository) FindByFilters(ctx context.Context, filters map[string]any, limit int) ([]entity.LeadRef, error) {
	args := m.Called(ctx, filters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadRef), args.Error(1)
}

// MockPromptTemplateRepository
type MockPromptTemplateRepository struct {
	mock.Mock
}

func (m *MockPromptTemplateRepository) FindDefault(ctx context.Context) (*entity.PromptTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PromptTemplate), args.Error(1)
}

func (m *MockPromptTemplateRepository) FindByName(ctx context.Context, name string) (*entity.PromptTemplate, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PromptTemplate), args.Error(1)
}

func (m *MockPromptTemplateRepository) SetDefault(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockEmailTemplateRepository
type MockEmailTemplateRepository struct {
	mock.Mock
}

func (m *MockEmailTemplateRepository) FindByName(ctx context.Context, name string) (*entity.EmailTemplate, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EmailTemplate), args.Error(1)
}

// MockCommunicationRepository
type MockCommunicationRepository struct {
	mock.Mock
}

func (m *MockCommunicationRepository) Create(ctx context.Context, c *entity.Communication) error {
	args := m.Called(ctx, c)
	if c.ID == "" {
		c.ID = "comm-test-id"
	}
	return args.Error(0)
}

func (m *MockCommunicationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCommunicationRepository) SetError(ctx context.Context, id, details string) error {
	args := m.Called(ctx, id, details)
	return args.Error(0)
}

// MockSettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockCompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Generate(ctx context.Context, prompt, model string) openrouter.Result {
	args := m.Called(ctx, prompt, model)
	return args.Get(0).(openrouter.Result)
}

// MockDirectEmailClient
type MockDirectEmailClient struct {
	mock.Mock
}

func (m *MockDirectEmailClient) Send(ctx context.Context, from string, to []string, subject, html string) (string, error) {
	args := m.Called(ctx, from, to, subject, html)
	return args.String(0), args.Error(1)
}

// MockSMTPSender
type MockSMTPSender struct {
	mock.Mock
}

func (m *MockSMTPSender) Send(sender, senderName string, recipients, cc, bcc []string, subject, html string) error {
	args := m.Called(sender, senderName, recipients, cc, bcc, subject, html)
	return args.Error(0)
}

// MockShellRenderer (embrulho trivial, suficiente para inspecionar o corpo)
type MockShellRenderer struct{}

func (m *MockShellRenderer) RenderShell(subject, bodyHTML, senderName string) string {
	return "<html>" + bodyHTML + "|" + senderName + "</html>"
}

// MockJobStore
type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) Save(ctx context.Context, job *entity.BulkJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobStore) Get(ctx context.Context, jobID string) (*entity.BulkJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BulkJob), args.Error(1)
}

func (m *MockJobStore) List(ctx context.Context) ([]entity.BulkJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BulkJob), args.Error(1)
}

// MockBulkJobEnqueuer
type MockBulkJobEnqueuer struct {
	mock.Mock
}

func (m *MockBulkJobEnqueuer) EnqueueBulkEmail(ctx context.Context, payload usecase.BulkEmailPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
