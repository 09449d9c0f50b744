package entity

import "time"

const (
	BulkJobStatusQueued     = "queued"
	BulkJobStatusRunning    = "running"
	BulkJobStatusCompleted  = "completed"
	BulkJobStatusWithErrors = "completed_with_errors"
	BulkJobStatusFailed     = "failed"
	BulkJobStatusNotFound   = "not_found"
	BulkJobStatusError      = "error"
)

// LeadSuccess registra um lead processado com sucesso dentro de um bulk job.
type LeadSuccess struct {
	Name            string `json:"name"`
	CommunicationID string `json:"communication_id,omitempty"`
}

// LeadFailure registra um lead que falhou, com a mensagem do erro.
type LeadFailure struct {
	Name            string `json:"name"`
	Error           string `json:"error"`
	CommunicationID string `json:"communication_id,omitempty"`
}

// BulkJob é o estado persistido de um job de envio em massa. Um único writer
// (o worker do job) muta o snapshot; leitores fazem polling sem lock.
type BulkJob struct {
	JobID        string `json:"job_id"`
	Status       string `json:"status"`
	LeadsCount   int    `json:"leads_count"`
	TemplateName string `json:"template_name"`
	TestMode     bool   `json:"test_mode"`
	User         string `json:"user,omitempty"`

	Progress        int           `json:"progress"` // 0-100, nunca regride
	SuccessfulLeads []LeadSuccess `json:"successful_leads"`
	FailedLeads     []LeadFailure `json:"failed_leads"`

	Timestamp   time.Time  `json:"timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Terminal indica se o job chegou num estado final.
func (j *BulkJob) Terminal() bool {
	return j.Status == BulkJobStatusCompleted || j.Status == BulkJobStatusWithErrors
}

// BulkJobSummary é a visão resumida usada na listagem de jobs.
type BulkJobSummary struct {
	JobID        string    `json:"job_id"`
	Status       string    `json:"status"`
	Progress     int       `json:"progress"`
	LeadsCount   int       `json:"leads_count"`
	SuccessCount int       `json:"success_count"`
	ErrorCount   int       `json:"error_count"`
	TemplateName string    `json:"template_name"`
	User         string    `json:"user,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Summary projeta o job no formato de listagem.
func (j *BulkJob) Summary() BulkJobSummary {
	return BulkJobSummary{
		JobID:        j.JobID,
		Status:       j.Status,
		Progress:     j.Progress,
		LeadsCount:   j.LeadsCount,
		SuccessCount: len(j.SuccessfulLeads),
		ErrorCount:   len(j.FailedLeads),
		TemplateName: j.TemplateName,
		User:         j.User,
		Timestamp:    j.Timestamp,
	}
}
