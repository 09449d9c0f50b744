package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

type EmailTemplateRepository struct {
	DB *sql.DB
}

func NewEmailTemplateRepository(db *sql.DB) *EmailTemplateRepository {
	return &EmailTemplateRepository{DB: db}
}

func (r *EmailTemplateRepository) FindByName(ctx context.Context, name string) (*entity.EmailTemplate, error) {
	query := `
		SELECT name, subject, body
		FROM email_templates
		WHERE name = $1
	`

	var tpl entity.EmailTemplate
	err := r.DB.QueryRowContext(ctx, query, name).Scan(&tpl.Name, &tpl.Subject, &tpl.Body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("email template '%s' not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}
