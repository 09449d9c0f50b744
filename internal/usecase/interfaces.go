package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/integration/openrouter"
)

// CompletionClientInterface é o cliente de chat completion. O resultado vem
// sempre etiquetado (openrouter.Result) — nunca um erro atravessando a camada.
type CompletionClientInterface interface {
	Generate(ctx context.Context, prompt, model string) openrouter.Result
}

// DirectEmailClientInterface é o transporte direto (API do provedor).
// Retorna o id do envio quando o provedor aceitou.
type DirectEmailClientInterface interface {
	Send(ctx context.Context, from string, to []string, subject, html string) (string, error)
}

// SMTPSenderInterface é o transporte via fila de email do host (SMTP síncrono).
type SMTPSenderInterface interface {
	Send(sender, senderName string, recipients, cc, bcc []string, subject, html string) error
}

// ShellRendererInterface embrulha o corpo HTML gerado no shell visual da marca.
type ShellRendererInterface interface {
	RenderShell(subject, bodyHTML, senderName string) string
}

// JobStoreInterface persiste snapshots de BulkJob com TTL (24h).
type JobStoreInterface interface {
	Save(ctx context.Context, job *entity.BulkJob) error
	Get(ctx context.Context, jobID string) (*entity.BulkJob, error)
	List(ctx context.Context) ([]entity.BulkJob, error)
}

// BulkJobEnqueuerInterface entrega o payload do job para o runner externo.
type BulkJobEnqueuerInterface interface {
	EnqueueBulkEmail(ctx context.Context, payload BulkEmailPayload) error
}

// BulkEmailPayload é a mensagem que o worker consome: um job por submissão,
// com a lista mínima de leads resolvida na hora do submit.
type BulkEmailPayload struct {
	JobID        string           `json:"job_id"`
	TemplateName string           `json:"template_name"`
	TestMode     bool             `json:"test_mode"`
	User         string           `json:"user,omitempty"`
	Leads        []entity.LeadRef `json:"leads"`
}

type SettingsRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// UserContext identifica o operador que disparou a operação.
type UserContext struct {
	Email    string
	FullName string
}

// SendResult é o envelope padrão das operações de envio.
type SendResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message,omitempty"`
	CommunicationID string `json:"communication_id,omitempty"`
}
