package usecase

import (
	"context"
	"log"
	"sort"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

// JobStatusUseCase responde o polling de status da UI. A regra é não falhar:
// job desconhecido vira status "not_found", erro de infraestrutura vira
// status "error" — o caller sempre recebe um snapshot utilizável.
type JobStatusUseCase struct {
	JobStore JobStoreInterface
}

func NewJobStatusUseCase(jobStore JobStoreInterface) *JobStatusUseCase {
	return &JobStatusUseCase{JobStore: jobStore}
}

func (uc *JobStatusUseCase) Status(ctx context.Context, jobID string) entity.BulkJob {
	if jobID == "" {
		return entity.BulkJob{Status: entity.BulkJobStatusError}
	}

	job, err := uc.JobStore.Get(ctx, jobID)
	if err != nil {
		log.Printf("⚠️ Falha ao consultar status do job %s: %v", jobID, err)
		return entity.BulkJob{JobID: jobID, Status: entity.BulkJobStatusError}
	}
	if job == nil {
		// Expirou (TTL de 24h) ou nunca existiu; para o caller dá no mesmo.
		return entity.BulkJob{JobID: jobID, Status: entity.BulkJobStatusNotFound}
	}
	return *job
}

// List devolve o resumo de todos os jobs ainda vivos no store, do mais
// recente para o mais antigo.
func (uc *JobStatusUseCase) List(ctx context.Context) ([]entity.BulkJobSummary, error) {
	jobs, err := uc.JobStore.List(ctx)
	if err != nil {
		return nil, err
	}

	sortNewestFirst(jobs)

	summaries := make([]entity.BulkJobSummary, 0, len(jobs))
	for i := range jobs {
		summaries = append(summaries, jobs[i].Summary())
	}
	return summaries, nil
}

// LastJobLeads devolve os leads (sucessos e falhas) do job mais recente —
// atalho da UI para reprocessar ou inspecionar o último disparo. Nil quando
// nenhum job vive no store.
func (uc *JobStatusUseCase) LastJobLeads(ctx context.Context) (*entity.BulkJob, error) {
	jobs, err := uc.JobStore.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	sortNewestFirst(jobs)
	return &jobs[0], nil
}

func sortNewestFirst(jobs []entity.BulkJob) {
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].Timestamp.After(jobs[j].Timestamp)
	})
}
