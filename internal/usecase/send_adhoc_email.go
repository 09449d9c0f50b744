package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

// SendAdhocEmailInput é o envio de conteúdo já revisado na UI: o cliente manda
// subject+content prontos; opcionalmente um template do servidor substitui o
// conteúdo do cliente.
type SendAdhocEmailInput struct {
	LeadName     string
	Recipients   string // lista separada por vírgula; vazio usa o email do lead
	CC           string
	BCC          string
	Subject      string
	Content      string
	TemplateName string
	TestMode     bool
	User         UserContext
}

// SendAdhocEmailUseCase grava e envia um email cujo conteúdo veio pronto do
// cliente (tipicamente o rascunho gerado e editado na UI). Compartilha o
// registro/entrega do orquestrador, mas não chama a IA.
type SendAdhocEmailUseCase struct {
	Leads          entity.LeadRepositoryInterface
	EmailTemplates entity.EmailTemplateRepositoryInterface
	Communications entity.CommunicationRepositoryInterface
	Shell          ShellRendererInterface
	Delivery       *DeliveryAdapter

	DefaultSenderName string
	TestRecipient     string
}

func NewSendAdhocEmailUseCase(
	leads entity.LeadRepositoryInterface,
	emailTemplates entity.EmailTemplateRepositoryInterface,
	communications entity.CommunicationRepositoryInterface,
	shell ShellRendererInterface,
	delivery *DeliveryAdapter,
	defaultSenderName, testRecipient string,
) *SendAdhocEmailUseCase {
	return &SendAdhocEmailUseCase{
		Leads:             leads,
		EmailTemplates:    emailTemplates,
		Communications:    communications,
		Shell:             shell,
		Delivery:          delivery,
		DefaultSenderName: defaultSenderName,
		TestRecipient:     testRecipient,
	}
}

func (uc *SendAdhocEmailUseCase) Execute(ctx context.Context, input SendAdhocEmailInput) SendResult {
	commID, err := uc.process(ctx, input)
	if err != nil {
		if commID != "" {
			if dbErr := uc.Communications.SetError(ctx, commID, err.Error()); dbErr != nil {
				log.Printf("⚠️ Falha ao marcar comunicação %s como Error: %v", commID, dbErr)
			}
		}
		return SendResult{Success: false, Message: err.Error(), CommunicationID: commID}
	}
	return SendResult{Success: true, Message: "Email sent successfully", CommunicationID: commID}
}

func (uc *SendAdhocEmailUseCase) process(ctx context.Context, input SendAdhocEmailInput) (string, error) {
	if input.LeadName == "" {
		return "", &NotFoundError{Message: "Lead name is required."}
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadName)
	if err != nil {
		return "", &NotFoundError{Message: "Lead '" + input.LeadName + "' not found."}
	}
	if lead.Email == "" {
		return "", &NotFoundError{Message: "Lead '" + input.LeadName + "' has no email address."}
	}

	senderName := input.User.FullName
	if senderName == "" {
		senderName = uc.DefaultSenderName
	}

	subject := input.Subject
	bodyHTML := input.Content
	isAI := true

	// Override opcional: template do servidor substitui o conteúdo do cliente.
	// Falha na renderização NÃO aborta o envio — o conteúdo do cliente segue.
	if input.TemplateName != "" {
		if tpl, tplErr := uc.EmailTemplates.FindByName(ctx, input.TemplateName); tplErr == nil {
			tmplContext := map[string]any{"doc": lead.Fields}

			if rendered, rerr := renderTextTemplate(tpl.Subject, tmplContext); rerr == nil {
				subject = rendered
			} else {
				subject = tpl.Subject
			}
			if rendered, rerr := renderTextTemplate(tpl.Body, tmplContext); rerr == nil {
				bodyHTML = rendered
				isAI = false
			} else {
				log.Printf("⚠️ Falha ao renderizar template '%s': %v. Usando conteúdo do cliente.", input.TemplateName, rerr)
			}
		} else {
			log.Printf("⚠️ Template '%s' não encontrado. Usando conteúdo do cliente.", input.TemplateName)
		}
	}

	if subject == "" || bodyHTML == "" {
		return "", &ConfigurationError{Message: "Subject and content are required to send an email."}
	}

	html := bodyHTML
	if isAI {
		html = uc.Shell.RenderShell(subject, bodyHTML, senderName)
	}

	recipients := input.Recipients
	if recipients == "" {
		recipients = lead.Email
	}
	actualRecipient := ""
	if input.TestMode {
		testRecipient := input.User.Email
		if testRecipient == "" {
			testRecipient = uc.TestRecipient
		}
		if testRecipient == "" {
			return "", &ConfigurationError{Message: "Test mode active, but no test recipient email found."}
		}
		if testRecipient != recipients {
			actualRecipient = recipients
		}
		recipients = testRecipient
	}

	comm := &entity.Communication{
		Subject:         subject,
		Content:         html,
		TextContent:     htmlToText(html),
		Sender:          input.User.Email,
		SenderName:      senderName,
		Recipients:      recipients,
		CC:              input.CC,
		BCC:             input.BCC,
		ActualRecipient: actualRecipient,
		ReferenceType:   "Lead",
		ReferenceName:   lead.Name,
		Status:          entity.CommunicationStatusOpen,
		IsAIGenerated:   isAI,
	}
	if err := uc.Communications.Create(ctx, comm); err != nil {
		return "", err
	}

	if err := uc.Delivery.Deliver(ctx, comm); err != nil {
		return comm.ID, err
	}
	if err := uc.Communications.UpdateStatus(ctx, comm.ID, entity.CommunicationStatusSent); err != nil {
		return comm.ID, err
	}
	return comm.ID, nil
}
