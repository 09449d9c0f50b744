package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

// SendLeadEmailInput descreve um envio para um lead. TemplateName escolhe o
// caminho sem IA; Tone (sem template) escolhe o caminho com IA.
type SendLeadEmailInput struct {
	LeadName          string
	TemplateName      string
	Tone              string
	AdditionalContext string
	TestMode          bool
	User              UserContext
}

// SendLeadEmailUseCase leva um lead por:
// resolução de conteúdo → embrulho HTML → registro → envio → atualização.
// Qualquer erro em qualquer etapa vira resultado estruturado; exceção nenhuma
// vaza para o caller.
type SendLeadEmailUseCase struct {
	Leads          entity.LeadRepositoryInterface
	EmailTemplates entity.EmailTemplateRepositoryInterface
	Communications entity.CommunicationRepositoryInterface
	Prompt         *PromptAssembler
	Completion     CompletionClientInterface
	Shell          ShellRendererInterface
	Delivery       *DeliveryAdapter

	OpenRouterKey     string
	DefaultSenderName string
	// Fallback de destinatário do test mode quando o operador não tem email
	TestRecipient string
}

func NewSendLeadEmailUseCase(
	leads entity.LeadRepositoryInterface,
	emailTemplates entity.EmailTemplateRepositoryInterface,
	communications entity.CommunicationRepositoryInterface,
	prompt *PromptAssembler,
	completion CompletionClientInterface,
	shell ShellRendererInterface,
	delivery *DeliveryAdapter,
	openRouterKey, defaultSenderName, testRecipient string,
) *SendLeadEmailUseCase {
	return &SendLeadEmailUseCase{
		Leads:             leads,
		EmailTemplates:    emailTemplates,
		Communications:    communications,
		Prompt:            prompt,
		Completion:        completion,
		Shell:             shell,
		Delivery:          delivery,
		OpenRouterKey:     openRouterKey,
		DefaultSenderName: defaultSenderName,
		TestRecipient:     testRecipient,
	}
}

// SendToLead é a borda pública: converte qualquer erro do fluxo em SendResult
// e garante que o registro de comunicação (se já criado) reflita o erro.
func (uc *SendLeadEmailUseCase) SendToLead(ctx context.Context, input SendLeadEmailInput) SendResult {
	commID, err := uc.process(ctx, input)
	if err != nil {
		if commID != "" {
			if dbErr := uc.Communications.SetError(ctx, commID, err.Error()); dbErr != nil {
				log.Printf("⚠️ Falha ao marcar comunicação %s como Error: %v", commID, dbErr)
			}
		}
		return SendResult{Success: false, Message: err.Error(), CommunicationID: commID}
	}

	return SendResult{Success: true, Message: "Email processed successfully", CommunicationID: commID}
}

func (uc *SendLeadEmailUseCase) process(ctx context.Context, input SendLeadEmailInput) (string, error) {
	// Lead e pré-condições
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
	senderEmail := input.User.Email

	// 1. resolving_content
	subject, html, isAI, err := uc.resolveContent(ctx, lead, input, senderName)
	if err != nil {
		return "", err
	}

	// Test mode: redireciona o transporte, preservando o destinatário real
	// para auditoria. O registro continua apontando para o lead verdadeiro.
	recipient := lead.Email
	actualRecipient := ""
	if input.TestMode {
		testRecipient := input.User.Email
		if testRecipient == "" {
			testRecipient = uc.TestRecipient
		}
		if testRecipient == "" {
			return "", &ConfigurationError{Message: "Test mode active, but no test recipient email found."}
		}
		if testRecipient != recipient {
			actualRecipient = recipient
		}
		recipient = testRecipient
	}

	// 3. recording
	comm := &entity.Communication{
		Subject:         subject,
		Content:         html,
		TextContent:     htmlToText(html),
		Sender:          senderEmail,
		SenderName:      senderName,
		Recipients:      recipient,
		ActualRecipient: actualRecipient,
		ReferenceType:   "Lead",
		ReferenceName:   lead.Name,
		Status:          entity.CommunicationStatusOpen,
		IsAIGenerated:   isAI,
	}
	if err := uc.Communications.Create(ctx, comm); err != nil {
		return "", err
	}

	// 4. sending
	if err := uc.Delivery.Deliver(ctx, comm); err != nil {
		return comm.ID, err
	}

	// 5. done
	if err := uc.Communications.UpdateStatus(ctx, comm.ID, entity.CommunicationStatusSent); err != nil {
		return comm.ID, err
	}

	return comm.ID, nil
}

// resolveContent decide o caminho do conteúdo: template pronto (sem IA) ou
// geração via IA a partir do tom. Sem nenhum dos dois, o método é indefinido.
func (uc *SendLeadEmailUseCase) resolveContent(ctx context.Context, lead *entity.Lead, input SendLeadEmailInput, senderName string) (string, string, bool, error) {
	if input.TemplateName != "" {
		tpl, err := uc.EmailTemplates.FindByName(ctx, input.TemplateName)
		if err != nil {
			return "", "", false, &NotFoundError{Message: "Email template '" + input.TemplateName + "' not found."}
		}

		tmplContext := map[string]any{"doc": lead.Fields}

		subject, err := renderTextTemplate(tpl.Subject, tmplContext)
		if err != nil {
			subject = tpl.Subject
		}
		// Template pronto já produz HTML completo: passa direto, sem shell
		body, err := renderTextTemplate(tpl.Body, tmplContext)
		if err != nil {
			body = tpl.Body
		}
		return subject, body, false, nil
	}

	if input.Tone != "" {
		if uc.OpenRouterKey == "" {
			return "", "", false, &ConfigurationError{Message: "OpenRouter API key not configured."}
		}

		prompt, model, err := uc.Prompt.Assemble(ctx, lead, input.Tone, input.AdditionalContext, input.User)
		if err != nil {
			return "", "", false, err
		}

		result := uc.Completion.Generate(ctx, prompt, model)
		if !result.Success {
			return "", "", false, &UpstreamResponseError{Message: result.Message, RawExcerpt: result.Message}
		}

		// 2. rendering: conteúdo da IA ganha o shell da marca
		html := uc.Shell.RenderShell(result.Subject, result.Content, senderName)
		return result.Subject, html, true, nil
	}

	return "", "", false, &ConfigurationError{Message: "Email generation method unclear: no template selected and no tone specified."}
}
