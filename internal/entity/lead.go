package entity

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Lead é o prospect do CRM. Os campos fixos cobrem o que o pipeline de email
// precisa direto; Fields carrega o documento completo (incluindo custom fields).
type Lead struct {
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Fields map[string]any `json:"fields"`
}

// LeadRef é o payload mínimo que viaja na fila de bulk ({name, email}).
type LeadRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LeadRepositoryInterface interface {
	FindByID(ctx context.Context, name string) (*Lead, error)
	FindManyByNames(ctx context.Context, names []string) ([]LeadRef, error)
	FindByFilters(ctx context.Context, filters map[string]any, limit int) ([]LeadRef, error)
}

// Campos internos de bookkeeping que nunca vão para o prompt da IA
var leadFieldBlocklist = map[string]bool{
	"amended_from": true,
	"docstatus":    true,
	"doctype":      true,
	"modified_by":  true,
	"owner":        true,
	"parent":       true,
	"parentfield":  true,
	"parenttype":   true,
	"creation":     true,
	"modified":     true,
}

var leadFieldBlockedPrefixes = []string{"_", "idx", "naming_series", "image", "timeline_hash"}

// RelevantFields filtra o mapping do lead: remove campos internos e valores nulos.
func (l *Lead) RelevantFields() map[string]any {
	out := make(map[string]any, len(l.Fields))
	for k, v := range l.Fields {
		if v == nil || leadFieldBlocklist[k] {
			continue
		}
		blocked := false
		for _, prefix := range leadFieldBlockedPrefixes {
			if strings.HasPrefix(k, prefix) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		out[k] = v
	}
	return out
}

// RelevantFieldsJSON serializa os campos filtrados. Datas viram strings ISO-8601
// para o modelo não receber o formato interno do banco.
func (l *Lead) RelevantFieldsJSON() string {
	normalized := make(map[string]any)
	for k, v := range l.RelevantFields() {
		normalized[k] = normalizeValue(v)
	}

	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(time.RFC3339)
	default:
		return v
	}
}

// DisplayName monta "first_name last_name", com fallback para o name do registro.
func (l *Lead) DisplayName() string {
	first, _ := l.Fields["first_name"].(string)
	last, _ := l.Fields["last_name"].(string)
	full := strings.TrimSpace(first + " " + last)
	if full != "" {
		return full
	}
	if l.Name != "" {
		return l.Name
	}
	return "Valued Contact"
}

func (l *Lead) fieldOrNA(key string) string {
	if v, ok := l.Fields[key].(string); ok && v != "" {
		return v
	}
	return "N/A"
}

// SummaryBlock é o bloco legível de dados do lead, anexado ao prompt quando o
// template não embutiu o JSON por conta própria.
func (l *Lead) SummaryBlock() string {
	email := l.Email
	if email == "" {
		email = "N/A"
	}

	parts := []string{
		"--- Lead Information ---",
		"Name: " + l.DisplayName(),
		"Email: " + email,
		"Organization: " + l.fieldOrNA("organization"),
		"Job Title: " + l.fieldOrNA("job_title"),
		"Industry: " + l.fieldOrNA("industry"),
		"\nFull Lead Data (JSON format for AI reference if needed):",
		l.RelevantFieldsJSON(),
	}
	return strings.Join(parts, "\n")
}

// SummaryLine é a versão de uma linha usada como variável de template.
func (l *Lead) SummaryLine() string {
	return "Lead: " + l.DisplayName() + ", Org: " + l.fieldOrNA("organization") + ", Title: " + l.fieldOrNA("job_title")
}
