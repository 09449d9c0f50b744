package entity

import (
	"context"
	"time"
)

const (
	CommunicationStatusOpen  = "Open"
	CommunicationStatusSent  = "Sent"
	CommunicationStatusError = "Error"
)

// Communication é o registro durável de uma tentativa de envio de email.
// Criado com status Open antes do disparo e atualizado depois (Sent/Error).
type Communication struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Content     string `json:"content"` // HTML completo
	TextContent string `json:"text_content"`

	Sender     string `json:"sender"`
	SenderName string `json:"sender_name"`
	Recipients string `json:"recipients"`
	CC         string `json:"cc,omitempty"`
	BCC        string `json:"bcc,omitempty"`

	// ActualRecipient guarda o destinatário real quando o test mode redirecionou o envio
	ActualRecipient string `json:"actual_recipient,omitempty"`

	ReferenceType string `json:"reference_type"`
	ReferenceName string `json:"reference_name"`

	Status        string    `json:"status"`
	IsAIGenerated bool      `json:"is_ai_generated"`
	ErrorDetails  string    `json:"error_details,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CommunicationRepositoryInterface interface {
	Create(ctx context.Context, c *Communication) error
	UpdateStatus(ctx context.Context, id, status string) error
	SetError(ctx context.Context, id, details string) error
}
