package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm-mailer/internal/usecase"
)

type AIEmailHandler struct {
	generate    *usecase.GenerateContentUseCase
	sendAdhoc   *usecase.SendAdhocEmailUseCase
	sendTest    *usecase.SendTestEmailUseCase
	preferences *usecase.PreferencesUseCase
	leadRepo    entity.LeadRepositoryInterface
	promptRepo  entity.PromptTemplateRepositoryInterface
}

func NewAIEmailHandler(
	generate *usecase.GenerateContentUseCase,
	sendAdhoc *usecase.SendAdhocEmailUseCase,
	sendTest *usecase.SendTestEmailUseCase,
	preferences *usecase.PreferencesUseCase,
	leadRepo entity.LeadRepositoryInterface,
	promptRepo entity.PromptTemplateRepositoryInterface,
) *AIEmailHandler {
	return &AIEmailHandler{
		generate:    generate,
		sendAdhoc:   sendAdhoc,
		sendTest:    sendTest,
		preferences: preferences,
		leadRepo:    leadRepo,
		promptRepo:  promptRepo,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// userFromRequest extrai a identidade do operador propagada pelo CRM.
func userFromRequest(r *http.Request) usecase.UserContext {
	return usecase.UserContext{
		Email:    r.Header.Get("X-User-Email"),
		FullName: r.Header.Get("X-User-Name"),
	}
}

type GenerateRequest struct {
	LeadName          string `json:"lead_name"`
	Tone              string `json:"tone"`
	AdditionalContext string `json:"additional_context,omitempty"`
}

func (h *AIEmailHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SendResult{Success: false, Message: "Invalid JSON"})
		return
	}

	result := h.generate.Execute(r.Context(), usecase.GenerateContentInput{
		LeadName:          req.LeadName,
		Tone:              req.Tone,
		AdditionalContext: req.AdditionalContext,
		User:              userFromRequest(r),
	})

	if result.Success {
		middleware.RecordAIGeneration("success")
		writeJSON(w, http.StatusOK, result)
		return
	}

	middleware.RecordAIGeneration("failure")
	// Falha de geração é resposta 200 com envelope etiquetado: a UI trata a
	// mensagem, não o status HTTP.
	writeJSON(w, http.StatusOK, result)
}

type SendRequest struct {
	LeadName     string `json:"lead_name"`
	Recipients   string `json:"recipients,omitempty"`
	CC           string `json:"cc,omitempty"`
	BCC          string `json:"bcc,omitempty"`
	Subject      string `json:"subject"`
	Content      string `json:"content"`
	TemplateName string `json:"email_template,omitempty"`
	TestMode     any    `json:"test_mode,omitempty"`
}

func (h *AIEmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SendResult{Success: false, Message: "Invalid JSON"})
		return
	}

	// Envio unitário deliberado: flag ausente é envio normal (o default seguro
	// de test mode vale só para o bulk).
	testMode := req.TestMode != nil && usecase.ParseTestMode(req.TestMode)

	result := h.sendAdhoc.Execute(r.Context(), usecase.SendAdhocEmailInput{
		LeadName:     req.LeadName,
		Recipients:   req.Recipients,
		CC:           req.CC,
		BCC:          req.BCC,
		Subject:      req.Subject,
		Content:      req.Content,
		TemplateName: req.TemplateName,
		TestMode:     testMode,
		User:         userFromRequest(r),
	})

	if result.Success {
		middleware.RecordEmailSent("adhoc", "sent")
	} else {
		middleware.RecordEmailSent("adhoc", "error")
	}
	writeJSON(w, http.StatusOK, result)
}

type TestSendRequest struct {
	LeadName  string `json:"lead_name,omitempty"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject,omitempty"`
	Content   string `json:"content,omitempty"`
}

func (h *AIEmailHandler) TestSend(w http.ResponseWriter, r *http.Request) {
	var req TestSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SendResult{Success: false, Message: "Invalid JSON"})
		return
	}

	result := h.sendTest.Execute(r.Context(), usecase.SendTestEmailInput{
		LeadName:  req.LeadName,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Content:   req.Content,
		User:      userFromRequest(r),
	})
	if !result.Success {
		middleware.RecordIntegrationError("resend")
	}
	writeJSON(w, http.StatusOK, result)
}

// LeadStructure devolve os campos relevantes do lead, já filtrados, para a UI
// de autoria de templates.
func (h *AIEmailHandler) LeadStructure(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	if leadID == "" {
		writeJSON(w, http.StatusBadRequest, usecase.SendResult{Success: false, Message: "Lead ID is required"})
		return
	}

	lead, err := h.leadRepo.FindByID(r.Context(), leadID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, usecase.SendResult{Success: false, Message: "Lead '" + leadID + "' not found."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lead":    lead.Name,
		"fields":  lead.RelevantFields(),
	})
}

type PreferenceRequest struct {
	EmailService string `json:"email_service"`
}

func (h *AIEmailHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"email_service": h.preferences.GetPreference(r.Context()),
	})
}

func (h *AIEmailHandler) SetPreference(w http.ResponseWriter, r *http.Request) {
	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SendResult{Success: false, Message: "Invalid JSON"})
		return
	}

	if err := h.preferences.SetPreference(r.Context(), req.EmailService); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SendResult{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"email_service": req.EmailService,
	})
}

func (h *AIEmailHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.preferences.Status(r.Context()))
}

type SetDefaultTemplateRequest struct {
	Name string `json:"name"`
}

// SetDefaultTemplate troca o template mestre default. A troca é atômica no
// banco: em nenhum momento existem dois defaults.
func (h *AIEmailHandler) SetDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	var req SetDefaultTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SendResult{Success: false, Message: "Invalid JSON"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, usecase.SendResult{Success: false, Message: "Template name is required"})
		return
	}

	if err := h.promptRepo.SetDefault(r.Context(), req.Name); err != nil {
		writeJSON(w, http.StatusNotFound, usecase.SendResult{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "default": req.Name})
}
