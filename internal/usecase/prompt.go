package usecase

import (
	"bytes"
	"context"
	"log"
	"strings"
	"text/template"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

// Diretiva fixa de formato de saída. Sempre anexada ao final do prompt,
// independente do que o template mestre contenha.
const jsonOutputDirective = "\n\n--- MANDATORY OUTPUT FORMAT ---" +
	"\nYour entire response MUST be a single, valid JSON object." +
	"\nThis JSON object MUST contain exactly two fields:" +
	"\n1. \"subject\": A string for the email subject." +
	"\n2. \"content\": A string containing the complete email body, formatted as HTML (e.g., using <p>, <ul>, <li>, <strong> tags, etc.)." +
	"\nExample of valid JSON output:" +
	"\n{\n  \"subject\": \"Regarding Your Recent Inquiry About Product X\"," +
	"\n  \"content\": \"<p>Dear User,</p><p>Thank you for your interest...</p>\"" +
	"\n}" +
	"\nDo NOT include any text or explanations outside of this JSON object."

// PromptAssembler monta o prompt final a partir do template mestre (registro
// default no banco) mais os dados do lead e as preferências vindas da UI.
type PromptAssembler struct {
	Templates entity.PromptTemplateRepositoryInterface
}

func NewPromptAssembler(templates entity.PromptTemplateRepositoryInterface) *PromptAssembler {
	return &PromptAssembler{Templates: templates}
}

// Assemble retorna (prompt final, model identifier do template ou vazio).
func (a *PromptAssembler) Assemble(ctx context.Context, lead *entity.Lead, tone, additionalContext string, user UserContext) (string, string, error) {
	// 1. Busca o template mestre default
	master, err := a.Templates.FindDefault(ctx)
	if err != nil || master == nil {
		return "", "", &ConfigurationError{Message: "Default AI prompt template not configured. Please set one."}
	}
	if strings.TrimSpace(master.Content) == "" {
		return "", "", &ConfigurationError{Message: "Default AI prompt template ('" + master.Name + "') content is empty."}
	}

	// 2. Dados do lead já filtrados e serializados
	leadJSON := lead.RelevantFieldsJSON()
	summaryBlock := lead.SummaryBlock()

	// 3. Contexto disponível para o template mestre
	tmplContext := map[string]any{
		"lead_summary_text":            lead.SummaryLine(),
		"lead_data_json":               leadJSON,
		"lead_raw_dict":                lead.Fields,
		"user_requested_tone":          tone,
		"user_additional_instructions": additionalContext,
		"current_user":                 user.Email,
	}

	// 4. Renderiza o template mestre. Erro de renderização não derruba o fluxo:
	// cai para o texto cru e segue.
	body, err := renderTextTemplate(master.Content, tmplContext)
	if err != nil {
		log.Printf("⚠️ Falha ao renderizar template mestre '%s': %v. Usando texto cru.", master.Name, err)
		body = master.Content
	}

	// 5. Rede de segurança: se o template não embutiu o JSON do lead, anexa o
	// bloco completo. Checagem textual, de propósito.
	if !strings.Contains(body, leadJSON) {
		body += "\n\n" + summaryBlock
	}

	// 6. Diretiva de formato, sempre por último
	return body + jsonOutputDirective, master.ModelIdentifier, nil
}

// renderTextTemplate renderiza text/template sobre um contexto de mapas
// aninhados. Chaves ausentes não são erro (viram vazio/<no value>).
func renderTextTemplate(text string, context map[string]any) (string, error) {
	tmpl, err := template.New("tmpl").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", err
	}
	return buf.String(), nil
}
