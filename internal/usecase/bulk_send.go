package usecase

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

// Teto de leads resolvidos via filtro numa única submissão.
const maxBulkLeadsPerFilter = 1000

// BulkSendInput é a submissão de um envio em massa: ou a lista explícita de
// leads, ou filtros para resolver a lista no momento do submit.
type BulkSendInput struct {
	LeadNames    []string
	Filters      map[string]any
	TemplateName string
	TestMode     any // aceita bool, número ou string ("1", "true", "yes"...)
	User         UserContext
}

// BulkSendResult confirma o enfileiramento (ou explica a recusa).
type BulkSendResult struct {
	Success    bool   `json:"success"`
	JobID      string `json:"job_id,omitempty"`
	LeadsCount int    `json:"leads_count,omitempty"`
	Message    string `json:"message,omitempty"`
}

// BulkSendUseCase valida a submissão, resolve a lista de leads, semeia o
// snapshot "queued" e publica o job. O processamento fica todo no worker.
type BulkSendUseCase struct {
	Leads    entity.LeadRepositoryInterface
	JobStore JobStoreInterface
	Enqueuer BulkJobEnqueuerInterface
}

func NewBulkSendUseCase(leads entity.LeadRepositoryInterface, jobStore JobStoreInterface, enqueuer BulkJobEnqueuerInterface) *BulkSendUseCase {
	return &BulkSendUseCase{
		Leads:    leads,
		JobStore: jobStore,
		Enqueuer: enqueuer,
	}
}

func (uc *BulkSendUseCase) Execute(ctx context.Context, input BulkSendInput) BulkSendResult {
	if input.TemplateName == "" {
		return BulkSendResult{Success: false, Message: "A template is required for bulk sending."}
	}

	leads, err := uc.resolveLeads(ctx, input)
	if err != nil {
		return BulkSendResult{Success: false, Message: err.Error()}
	}
	if len(leads) == 0 {
		return BulkSendResult{Success: false, Message: "No leads selected for bulk sending."}
	}

	testMode := ParseTestMode(input.TestMode)
	jobID := uuid.New().String()

	// Snapshot "queued" semeado antes do publish: quem consultar o status logo
	// após o submit já encontra o job, mesmo que o worker demore a pegar.
	job := &entity.BulkJob{
		JobID:        jobID,
		Status:       entity.BulkJobStatusQueued,
		LeadsCount:   len(leads),
		TemplateName: input.TemplateName,
		TestMode:     testMode,
		User:         input.User.Email,
		Timestamp:    time.Now(),
	}
	if err := uc.JobStore.Save(ctx, job); err != nil {
		log.Printf("⚠️ Falha ao semear snapshot do job %s: %v", jobID, err)
	}

	payload := BulkEmailPayload{
		JobID:        jobID,
		TemplateName: input.TemplateName,
		TestMode:     testMode,
		User:         input.User.Email,
		Leads:        leads,
	}
	if err := uc.Enqueuer.EnqueueBulkEmail(ctx, payload); err != nil {
		job.Status = entity.BulkJobStatusFailed
		if saveErr := uc.JobStore.Save(ctx, job); saveErr != nil {
			log.Printf("⚠️ Falha ao marcar job %s como failed: %v", jobID, saveErr)
		}
		return BulkSendResult{Success: false, Message: "Failed to enqueue bulk email job: " + err.Error()}
	}

	log.Printf("📤 Bulk job %s enfileirado (%d leads, template '%s', test_mode=%v)",
		jobID, len(leads), input.TemplateName, testMode)

	return BulkSendResult{Success: true, JobID: jobID, LeadsCount: len(leads)}
}

// resolveLeads materializa a lista no submit: ou os nomes explícitos (na ordem
// recebida), ou o resultado do filtro (limitado).
func (uc *BulkSendUseCase) resolveLeads(ctx context.Context, input BulkSendInput) ([]entity.LeadRef, error) {
	if len(input.LeadNames) > 0 {
		names := make([]string, 0, len(input.LeadNames))
		for _, n := range input.LeadNames {
			if trimmed := strings.TrimSpace(n); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		if len(names) == 0 {
			return nil, nil
		}
		return uc.Leads.FindManyByNames(ctx, names)
	}

	if len(input.Filters) > 0 {
		return uc.Leads.FindByFilters(ctx, input.Filters, maxBulkLeadsPerFilter)
	}

	return nil, nil
}

// ParseTestMode normaliza o flag de test mode vindo de clientes heterogêneos:
// bool nativo, número (0/1) ou string ("true", "1", "yes", "on"...).
// Flag AUSENTE é test mode LIGADO: envio em massa só vai ao vivo com um
// pedido explícito ("0"/false); o default seguro nunca dispara para os leads.
func ParseTestMode(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case float64:
		return val != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		switch s {
		case "1", "true", "yes", "on", "y":
			return true
		case "0", "false", "no", "off", "n":
			return false
		case "":
			return true
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n != 0
		}
		return false
	case nil:
		return true
	default:
		return false
	}
}
