package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Colunas que podem aparecer em filtros vindos da UI. Tudo fora disso é ignorado
// para o filtro não virar injeção de SQL.
var filterableLeadColumns = map[string]bool{
	"name":         true,
	"email":        true,
	"first_name":   true,
	"last_name":    true,
	"organization": true,
	"job_title":    true,
	"industry":     true,
	"status":       true,
}

func (r *LeadRepository) FindByID(ctx context.Context, name string) (*entity.Lead, error) {
	query := `
		SELECT name, email, first_name, last_name, organization, job_title, industry, status, custom_fields, created_at, updated_at
		FROM leads
		WHERE name = $1
	`

	var (
		lead            entity.Lead
		email           sql.NullString
		firstName       sql.NullString
		lastName        sql.NullString
		organization    sql.NullString
		jobTitle        sql.NullString
		industry        sql.NullString
		status          sql.NullString
		customFieldsRaw []byte
		createdAt       sql.NullTime
		updatedAt       sql.NullTime
	)

	err := r.DB.QueryRowContext(ctx, query, name).Scan(
		&lead.Name, &email, &firstName, &lastName, &organization,
		&jobTitle, &industry, &status, &customFieldsRaw, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lead '%s' not found", name)
	}
	if err != nil {
		return nil, err
	}

	lead.Email = email.String

	// Monta o mapping completo: colunas fixas + custom fields do JSONB
	fields := map[string]any{
		"name":  lead.Name,
		"email": lead.Email,
	}
	setIfValid(fields, "first_name", firstName)
	setIfValid(fields, "last_name", lastName)
	setIfValid(fields, "organization", organization)
	setIfValid(fields, "job_title", jobTitle)
	setIfValid(fields, "industry", industry)
	setIfValid(fields, "status", status)
	if createdAt.Valid {
		fields["created_at"] = createdAt.Time
	}
	if updatedAt.Valid {
		fields["updated_at"] = updatedAt.Time
	}

	if len(customFieldsRaw) > 0 {
		var custom map[string]any
		if err := json.Unmarshal(customFieldsRaw, &custom); err == nil {
			for k, v := range custom {
				fields[k] = v
			}
		}
	}

	lead.Fields = fields
	return &lead, nil
}

func (r *LeadRepository) FindManyByNames(ctx context.Context, names []string) ([]entity.LeadRef, error) {
	query := `
		SELECT name, COALESCE(email, '')
		FROM leads
		WHERE name = ANY($1)
		ORDER BY array_position($1, name)
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeadRefs(rows)
}

func (r *LeadRepository) FindByFilters(ctx context.Context, filters map[string]any, limit int) ([]entity.LeadRef, error) {
	where := []string{"1=1"}
	args := []any{}

	for col, val := range filters {
		if !filterableLeadColumns[col] {
			continue
		}
		args = append(args, val)
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT name, COALESCE(email, '')
		FROM leads
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d
	`, strings.Join(where, " AND "), len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeadRefs(rows)
}

func scanLeadRefs(rows *sql.Rows) ([]entity.LeadRef, error) {
	var refs []entity.LeadRef
	for rows.Next() {
		var ref entity.LeadRef
		if err := rows.Scan(&ref.Name, &ref.Email); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func setIfValid(fields map[string]any, key string, v sql.NullString) {
	if v.Valid && v.String != "" {
		fields[key] = v.String
	}
}
