package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

type CommunicationRepository struct {
	DB *sql.DB
}

func NewCommunicationRepository(db *sql.DB) *CommunicationRepository {
	return &CommunicationRepository{DB: db}
}

func (r *CommunicationRepository) Create(ctx context.Context, c *entity.Communication) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO communications (
			id, subject, content, text_content,
			sender, sender_name, recipients, cc, bcc, actual_recipient,
			reference_type, reference_name,
			status, is_ai_generated, error_details, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Subject, c.Content, c.TextContent,
		c.Sender, c.SenderName, c.Recipients, c.CC, c.BCC, nullIfEmpty(c.ActualRecipient),
		c.ReferenceType, c.ReferenceName,
		c.Status, c.IsAIGenerated, nullIfEmpty(c.ErrorDetails), c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CommunicationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE communications SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, status, id)
	return err
}

func (r *CommunicationRepository) SetError(ctx context.Context, id, details string) error {
	query := `UPDATE communications SET status = $1, error_details = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, entity.CommunicationStatusError, details, id)
	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
