package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

// SendTestEmailInput é o pedido de diagnóstico: conteúdo opcional (default
// fixo), lead opcional para personalizar a saudação.
type SendTestEmailInput struct {
	LeadName  string
	Recipient string
	Subject   string
	Content   string
	User      UserContext
}

// SendTestEmailUseCase dispara um email de diagnóstico pelo transporte direto
// (Resend), fora do fluxo normal: sem registro de comunicação, sem preferência
// de transporte. O corpo passa pelo shell da marca, igual ao envio real, para
// o teste validar também o visual que o lead receberia.
type SendTestEmailUseCase struct {
	Leads  entity.LeadRepositoryInterface
	Shell  ShellRendererInterface
	Direct DirectEmailClientInterface

	ResendAPIKey      string
	ResendFrom        string
	DefaultSenderName string
}

func NewSendTestEmailUseCase(leads entity.LeadRepositoryInterface, shell ShellRendererInterface, direct DirectEmailClientInterface, resendAPIKey, resendFrom, defaultSenderName string) *SendTestEmailUseCase {
	return &SendTestEmailUseCase{
		Leads:             leads,
		Shell:             shell,
		Direct:            direct,
		ResendAPIKey:      resendAPIKey,
		ResendFrom:        resendFrom,
		DefaultSenderName: defaultSenderName,
	}
}

func (uc *SendTestEmailUseCase) Execute(ctx context.Context, input SendTestEmailInput) SendResult {
	if input.Recipient == "" {
		return SendResult{Success: false, Message: "Recipient email is required."}
	}
	if uc.ResendAPIKey == "" {
		return SendResult{Success: false, Message: "Resend API Key missing"}
	}
	if uc.ResendFrom == "" {
		return SendResult{Success: false, Message: "Resend default from address missing"}
	}

	// Lead opcional: personaliza a saudação do corpo default
	greeting := "there"
	if input.LeadName != "" {
		lead, err := uc.Leads.FindByID(ctx, input.LeadName)
		if err != nil {
			return SendResult{Success: false, Message: "Lead '" + input.LeadName + "' not found."}
		}
		greeting = lead.DisplayName()
	}

	subject := input.Subject
	if subject == "" {
		subject = "Test Email - CRM AI Mailer"
	}
	body := input.Content
	if body == "" {
		body = fmt.Sprintf("<p>Hi %s,</p><p>This is a test email confirming your direct sending configuration works.</p>", greeting)
	}

	senderName := input.User.FullName
	if senderName == "" {
		senderName = uc.DefaultSenderName
	}

	// Mesmo embrulho do envio real: o teste valida o HTML final
	html := uc.Shell.RenderShell(subject, body, senderName)

	id, err := uc.Direct.Send(ctx, uc.ResendFrom, []string{input.Recipient}, subject, html)
	if err != nil {
		return SendResult{Success: false, Message: err.Error()}
	}

	return SendResult{Success: true, Message: fmt.Sprintf("Test email sent (id: %s)", id)}
}
