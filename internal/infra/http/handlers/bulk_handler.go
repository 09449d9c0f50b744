package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm-mailer/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm-mailer/internal/usecase"
)

type BulkHandler struct {
	bulkSend  *usecase.BulkSendUseCase
	jobStatus *usecase.JobStatusUseCase
}

func NewBulkHandler(bulkSend *usecase.BulkSendUseCase, jobStatus *usecase.JobStatusUseCase) *BulkHandler {
	return &BulkHandler{
		bulkSend:  bulkSend,
		jobStatus: jobStatus,
	}
}

type BulkSubmitRequest struct {
	Leads        []string       `json:"leads,omitempty"`
	Filters      map[string]any `json:"filters,omitempty"`
	TemplateName string         `json:"template_name"`
	TestMode     any            `json:"test_mode,omitempty"`
}

func (h *BulkHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req BulkSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.BulkSendResult{Success: false, Message: "Invalid JSON"})
		return
	}

	result := h.bulkSend.Execute(r.Context(), usecase.BulkSendInput{
		LeadNames:    req.Leads,
		Filters:      req.Filters,
		TemplateName: req.TemplateName,
		TestMode:     req.TestMode,
		User:         userFromRequest(r),
	})

	if !result.Success {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	middleware.RecordBulkJobSubmission()
	writeJSON(w, http.StatusAccepted, result)
}

// Status nunca retorna erro HTTP por job desconhecido: o snapshot carrega o
// status "not_found"/"error" e a UI decide o que mostrar.
func (h *BulkHandler) Status(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := h.jobStatus.Status(r.Context(), jobID)
	writeJSON(w, http.StatusOK, job)
}

// LastLeads devolve quem entrou no último disparo em massa — a UI usa para
// reprocessar falhas sem o operador guardar o job_id.
func (h *BulkHandler) LastLeads(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobStatus.LastJobLeads(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to load last bulk job",
		})
		return
	}
	if job == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"message": "No bulk email jobs found.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"job_id":           job.JobID,
		"status":           job.Status,
		"successful_leads": job.SuccessfulLeads,
		"failed_leads":     job.FailedLeads,
	})
}

func (h *BulkHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobStatus.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to list bulk jobs",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"jobs":    jobs,
	})
}
