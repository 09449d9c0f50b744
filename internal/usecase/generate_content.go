package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

// GenerateContentInput é o pedido de geração de rascunho (sem envio).
type GenerateContentInput struct {
	LeadName          string
	Tone              string
	AdditionalContext string
	User              UserContext
}

// GenerateContentResult é o envelope etiquetado devolvido à UI: sucesso carrega
// subject+content, falha carrega a mensagem — nunca os dois.
type GenerateContentResult struct {
	Success bool   `json:"success"`
	Subject string `json:"subject,omitempty"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

// GenerateContentUseCase produz o rascunho de email via IA para revisão na UI.
// Nada é gravado nem enviado aqui.
type GenerateContentUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Prompt     *PromptAssembler
	Completion CompletionClientInterface

	OpenRouterKey string
}

func NewGenerateContentUseCase(leads entity.LeadRepositoryInterface, prompt *PromptAssembler, completion CompletionClientInterface, openRouterKey string) *GenerateContentUseCase {
	return &GenerateContentUseCase{
		Leads:         leads,
		Prompt:        prompt,
		Completion:    completion,
		OpenRouterKey: openRouterKey,
	}
}

func (uc *GenerateContentUseCase) Execute(ctx context.Context, input GenerateContentInput) GenerateContentResult {
	if input.LeadName == "" {
		return GenerateContentResult{Success: false, Message: "Lead name is required."}
	}
	if uc.OpenRouterKey == "" {
		return GenerateContentResult{Success: false, Message: "OpenRouter API key not configured."}
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadName)
	if err != nil {
		return GenerateContentResult{Success: false, Message: "Lead '" + input.LeadName + "' not found."}
	}

	prompt, model, err := uc.Prompt.Assemble(ctx, lead, input.Tone, input.AdditionalContext, input.User)
	if err != nil {
		return GenerateContentResult{Success: false, Message: err.Error()}
	}

	result := uc.Completion.Generate(ctx, prompt, model)
	if !result.Success {
		log.Printf("❌ Geração de conteúdo falhou para lead %s: %s", input.LeadName, result.Message)
		return GenerateContentResult{Success: false, Message: result.Message}
	}

	return GenerateContentResult{
		Success: true,
		Subject: result.Subject,
		Content: result.Content,
	}
}
