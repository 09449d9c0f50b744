package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

type PromptTemplateRepository struct {
	DB *sql.DB
}

func NewPromptTemplateRepository(db *sql.DB) *PromptTemplateRepository {
	return &PromptTemplateRepository{DB: db}
}

func (r *PromptTemplateRepository) FindDefault(ctx context.Context) (*entity.PromptTemplate, error) {
	query := `
		SELECT name, content, COALESCE(model_identifier, ''), is_default
		FROM prompt_templates
		WHERE is_default = TRUE
		LIMIT 1
	`

	var tpl entity.PromptTemplate
	err := r.DB.QueryRowContext(ctx, query).Scan(&tpl.Name, &tpl.Content, &tpl.ModelIdentifier, &tpl.IsDefault)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no default prompt template configured")
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *PromptTemplateRepository) FindByName(ctx context.Context, name string) (*entity.PromptTemplate, error) {
	query := `
		SELECT name, content, COALESCE(model_identifier, ''), is_default
		FROM prompt_templates
		WHERE name = $1
	`

	var tpl entity.PromptTemplate
	err := r.DB.QueryRowContext(ctx, query, name).Scan(&tpl.Name, &tpl.Content, &tpl.ModelIdentifier, &tpl.IsDefault)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("prompt template '%s' not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// SetDefault troca o default num único UPDATE condicional dentro de transação.
// Qualquer interleaving de dois SetDefault concorrentes termina com exatamente
// um registro default.
func (r *PromptTemplateRepository) SetDefault(ctx context.Context, name string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE prompt_templates SET is_default = (name = $1)`, name)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("prompt template '%s' not found", name)
	}

	return tx.Commit()
}
