package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
	"github.com/xavierca1/ligue-crm-mailer/internal/usecase"
)

type adhocFixture struct {
	leads     *MockLeadRepository
	emailTpls *MockEmailTemplateRepository
	comms     *MockCommunicationRepository
	direct    *MockDirectEmailClient
	smtp      *MockSMTPSender
	settings  *MockSettingsRepository
	uc        *usecase.SendAdhocEmailUseCase
}

func newAdhocFixture() *adhocFixture {
	f := &adhocFixture{
		leads:     new(MockLeadRepository),
		emailTpls: new(MockEmailTemplateRepository),
		comms:     new(MockCommunicationRepository),
		direct:    new(MockDirectEmailClient),
		smtp:      new(MockSMTPSender),
		settings:  new(MockSettingsRepository),
	}

	delivery := usecase.NewDeliveryAdapter(f.settings, f.direct, f.smtp, "crm@ligue.com", "re_test_key")
	f.uc = usecase.NewSendAdhocEmailUseCase(
		f.leads, f.emailTpls, f.comms, &MockShellRenderer{}, delivery,
		"Equipe Ligue", "fallback-test@ligue.com",
	)
	return f
}

// TestAdhocSendClientContent - conteúdo revisado na UI: embrulhado no shell,
// gravado como gerado por IA e enviado ao lead
func TestAdhocSendClientContent(t *testing.T) {
	ctx := context.Background()
	f := newAdhocFixture()

	f.leads.On("FindByID", ctx, "CRM-LEAD-001").Return(anaLead(), nil)
	f.settings.On("Get", ctx, usecase.SettingEmailService).Return("resend", nil)
	f.comms.On("Create", ctx, mock.Anything).Return(nil)
	f.direct.On("Send", ctx, mock.Anything, []string{"ana@example.com"}, "Quick question", mock.Anything).Return("id", nil)
	f.comms.On("UpdateStatus", ctx, mock.Anything, entity.CommunicationStatusSent).Return(nil)

	result := f.uc.Execute(ctx, usecase.SendAdhocEmailInput{
		LeadName: "CRM-LEAD-001",
		Subject:  "Quick question",
		Content:  "<p>Hi Ana, quick question.</p>",
		User:     usecase.UserContext{Email: "vendas@ligue.com", FullName: "Carla Lima"},
	})

	assert.True(t, result.Success)

	createdComm := f.comms.Calls[0].Arguments.Get(1).(*entity.Communication)
	assert.True(t, createdComm.IsAIGenerated)
	assert.Contains(t, createdComm.Content, "<p>Hi Ana, quick question.</p>")
}

// TestAdhocSendTemplateOverride - template do servidor substitui o conteúdo do
// cliente; resultado não é marcado como gerado por IA
func TestAdhocSendTemplateOverride(t *testing.T) {
	ctx := context.Background()
	f := newAdhocFixture()

	f.leads.On("FindByID", ctx, "CRM-LEAD-001").Return(anaLead(), nil)
	f.emailTpls.On("FindByName", ctx, "Welcome").Return(&entity.EmailTemplate{
		Name:    "Welcome",
		Subject: "Welcome {{.doc.first_name}}",
		Body:    "<p>Welcome aboard, {{.doc.first_name}}!</p>",
	}, nil)
	f.settings.On("Get", ctx, usecase.SettingEmailService).Return("resend", nil)
	f.comms.On("Create", ctx, mock.Anything).Return(nil)
	f.direct.On("Send", ctx, mock.Anything, mock.Anything, "Welcome Ana", mock.Anything).Return("id", nil)
	f.comms.On("UpdateStatus", ctx, mock.Anything, entity.CommunicationStatusSent).Return(nil)

	result := f.uc.Execute(ctx, usecase.SendAdhocEmailInput{
		LeadName:     "CRM-LEAD-001",
		Subject:      "client subject",
		Content:      "<p>client content</p>",
		TemplateName: "Welcome",
	})

	assert.True(t, result.Success)

	createdComm := f.comms.Calls[0].Arguments.Get(1).(*entity.Communication)
	assert.False(t, createdComm.IsAIGenerated)
	assert.Equal(t, "Welcome Ana", createdComm.Subject)
	assert.Contains(t, createdComm.Content, "Welcome aboard, Ana!")
}

// TestAdhocSendTemplateMissingFallsBack - template desconhecido não aborta:
// o conteúdo do cliente segue
func TestAdhocSendTemplateMissingFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newAdhocFixture()

	f.leads.On("FindByID", ctx, "CRM-LEAD-001").Return(anaLead(), nil)
	f.emailTpls.On("FindByName", ctx, "Missing").Return(nil, errors.New("not found"))
	f.settings.On("Get", ctx, usecase.SettingEmailService).Return("resend", nil)
	f.comms.On("Create", ctx, mock.Anything).Return(nil)
	f.direct.On("Send", ctx, mock.Anything, mock.Anything, "client subject", mock.Anything).Return("id", nil)
	f.comms.On("UpdateStatus", ctx, mock.Anything, entity.CommunicationStatusSent).Return(nil)

	result := f.uc.Execute(ctx, usecase.SendAdhocEmailInput{
		LeadName:     "CRM-LEAD-001",
		Subject:      "client subject",
		Content:      "<p>client content</p>",
		TemplateName: "Missing",
	})

	assert.True(t, result.Success)

	createdComm := f.comms.Calls[0].Arguments.Get(1).(*entity.Communication)
	assert.Contains(t, createdComm.Content, "client content")
}

// TestAdhocSendExplicitRecipients - recipients/cc/bcc explícitos vão para o
// registro no lugar do email do lead
func TestAdhocSendExplicitRecipients(t *testing.T) {
	ctx := context.Background()
	f := newAdhocFixture()

	f.leads.On("FindByID", ctx, "CRM-LEAD-001").Return(anaLead(), nil)
	f.settings.On("Get", ctx, usecase.SettingEmailService).Return("resend", nil)
	f.comms.On("Create", ctx, mock.Anything).Return(nil)
	f.direct.On("Send", ctx, mock.Anything, []string{"a@x.com", "b@x.com"}, mock.Anything, mock.Anything).Return("id", nil)
	f.comms.On("UpdateStatus", ctx, mock.Anything, entity.CommunicationStatusSent).Return(nil)

	result := f.uc.Execute(ctx, usecase.SendAdhocEmailInput{
		LeadName:   "CRM-LEAD-001",
		Recipients: "a@x.com, b@x.com",
		CC:         "chefe@ligue.com",
		Subject:    "s",
		Content:    "<p>c</p>",
	})

	assert.True(t, result.Success)

	createdComm := f.comms.Calls[0].Arguments.Get(1).(*entity.Communication)
	assert.Equal(t, "a@x.com, b@x.com", createdComm.Recipients)
	assert.Equal(t, "chefe@ligue.com", createdComm.CC)
}

// TestAdhocSendRequiresSubjectAndContent
func TestAdhocSendRequiresSubjectAndContent(t *testing.T) {
	ctx := context.Background()
	f := newAdhocFixture()

	f.leads.On("FindByID", ctx, "CRM-LEAD-001").Return(anaLead(), nil)

	result := f.uc.Execute(ctx, usecase.SendAdhocEmailInput{
		LeadName: "CRM-LEAD-001",
		Subject:  "",
		Content:  "",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Subject and content are required")
	f.comms.AssertNotCalled(t, "Create")
}
