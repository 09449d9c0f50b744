package entity

import "context"

// PromptTemplate é o registro com as instruções mestre para a IA.
// No máximo um registro pode ter IsDefault = true.
type PromptTemplate struct {
	Name            string `json:"name"`
	Content         string `json:"content"`
	ModelIdentifier string `json:"model_identifier"`
	IsDefault       bool   `json:"is_default"`
}

type PromptTemplateRepositoryInterface interface {
	FindDefault(ctx context.Context) (*PromptTemplate, error)
	FindByName(ctx context.Context, name string) (*PromptTemplate, error)

	// SetDefault marca o template como default e desmarca todos os outros
	// num único UPDATE condicional (sem janela para dois defaults).
	SetDefault(ctx context.Context, name string) error
}

// EmailTemplate é o template de email pronto (subject + corpo HTML completo),
// usado pelo caminho sem IA e pelo bulk send.
type EmailTemplate struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type EmailTemplateRepositoryInterface interface {
	FindByName(ctx context.Context, name string) (*EmailTemplate, error)
}
