package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
	"github.com/xavierca1/ligue-crm-mailer/internal/usecase"
)

// TestBulkSendSuccess - submissão válida: snapshot "queued" semeado antes do
// publish, payload com os leads na ordem de submissão
func TestBulkSendSuccess(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockStore := new(MockJobStore)
	mockQueue := new(MockBulkJobEnqueuer)

	refs := []entity.LeadRef{
		{Name: "CRM-LEAD-001", Email: "ana@example.com"},
		{Name: "CRM-LEAD-002", Email: "bruno@example.com"},
	}
	mockLeads.On("FindManyByNames", ctx, []string{"CRM-LEAD-001", "CRM-LEAD-002"}).Return(refs, nil)
	mockStore.On("Save", ctx, mock.Anything).Return(nil)
	mockQueue.On("EnqueueBulkEmail", ctx, mock.Anything).Return(nil)

	uc := usecase.NewBulkSendUseCase(mockLeads, mockStore, mockQueue)
	result := uc.Execute(ctx, usecase.BulkSendInput{
		LeadNames:    []string{"CRM-LEAD-001", "CRM-LEAD-002"},
		TemplateName: "Welcome",
		TestMode:     "1",
		User:         usecase.UserContext{Email: "vendas@ligue.com"},
	})

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.JobID)
	assert.Equal(t, 2, result.LeadsCount)

	// Snapshot queued semeado antes do publish
	seeded := mockStore.Calls[0].Arguments.Get(1).(*entity.BulkJob)
	assert.Equal(t, entity.BulkJobStatusQueued, seeded.Status)
	assert.Equal(t, 2, seeded.LeadsCount)
	assert.True(t, seeded.TestMode)

	payload := mockQueue.Calls[0].Arguments.Get(1).(usecase.BulkEmailPayload)
	assert.Equal(t, result.JobID, payload.JobID)
	assert.Equal(t, refs, payload.Leads)
}

// TestBulkSendRequiresTemplate
func TestBulkSendRequiresTemplate(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockStore := new(MockJobStore)
	mockQueue := new(MockBulkJobEnqueuer)

	uc := usecase.NewBulkSendUseCase(mockLeads, mockStore, mockQueue)
	result := uc.Execute(ctx, usecase.BulkSendInput{
		LeadNames: []string{"CRM-LEAD-001"},
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "template is required")
	mockQueue.AssertNotCalled(t, "EnqueueBulkEmail")
}

// TestBulkSendRequiresLeads - nem lista nem filtro: recusa
func TestBulkSendRequiresLeads(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockStore := new(MockJobStore)
	mockQueue := new(MockBulkJobEnqueuer)

	uc := usecase.NewBulkSendUseCase(mockLeads, mockStore, mockQueue)
	result := uc.Execute(ctx, usecase.BulkSendInput{TemplateName: "Welcome"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "No leads selected")
	mockQueue.AssertNotCalled(t, "EnqueueBulkEmail")
}

// TestBulkSendResolvesFiltersWithCap - caminho por filtro respeita o teto
func TestBulkSendResolvesFiltersWithCap(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockStore := new(MockJobStore)
	mockQueue := new(MockBulkJobEnqueuer)

	filters := map[string]any{"status": "Open"}
	mockLeads.On("FindByFilters", ctx, filters, 1000).Return([]entity.LeadRef{
		{Name: "CRM-LEAD-009", Email: "c@example.com"},
	}, nil)
	mockStore.On("Save", ctx, mock.Anything).Return(nil)
	mockQueue.On("EnqueueBulkEmail", ctx, mock.Anything).Return(nil)

	uc := usecase.NewBulkSendUseCase(mockLeads, mockStore, mockQueue)
	result := uc.Execute(ctx, usecase.BulkSendInput{
		Filters:      filters,
		TemplateName: "Welcome",
	})

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.LeadsCount)
	mockLeads.AssertCalled(t, "FindByFilters", ctx, filters, 1000)
}

// TestBulkSendEnqueueFailureMarksJobFailed - publish falhou: o snapshot vira
// "failed" e o caller recebe a recusa
func TestBulkSendEnqueueFailureMarksJobFailed(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockStore := new(MockJobStore)
	mockQueue := new(MockBulkJobEnqueuer)

	mockLeads.On("FindManyByNames", ctx, mock.Anything).Return([]entity.LeadRef{
		{Name: "CRM-LEAD-001", Email: "ana@example.com"},
	}, nil)
	mockStore.On("Save", ctx, mock.Anything).Return(nil)
	mockQueue.On("EnqueueBulkEmail", ctx, mock.Anything).Return(errors.New("broker unavailable"))

	uc := usecase.NewBulkSendUseCase(mockLeads, mockStore, mockQueue)
	result := uc.Execute(ctx, usecase.BulkSendInput{
		LeadNames:    []string{"CRM-LEAD-001"},
		TemplateName: "Welcome",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "broker unavailable")

	// Segundo Save marca failed
	failed := mockStore.Calls[1].Arguments.Get(1).(*entity.BulkJob)
	assert.Equal(t, entity.BulkJobStatusFailed, failed.Status)
}

// TestParseTestMode - normalização do flag vindo de clientes heterogêneos.
// Flag ausente (nil/"") é test mode LIGADO; ao vivo só com pedido explícito.
func TestParseTestMode(t *testing.T) {
	truthy := []any{true, 1, float64(1), "1", "true", "TRUE", " yes ", "on", "y", "2", nil, ""}
	for _, v := range truthy {
		assert.True(t, usecase.ParseTestMode(v), "esperava true para %#v", v)
	}

	falsy := []any{false, 0, float64(0), "0", "false", "no", "off", "whatever", []string{"x"}}
	for _, v := range falsy {
		assert.False(t, usecase.ParseTestMode(v), "esperava false para %#v", v)
	}
}

// TestBulkSendDefaultsToTestMode - submissão sem o flag nunca dispara ao vivo:
// o job sai com test mode ligado
func TestBulkSendDefaultsToTestMode(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockStore := new(MockJobStore)
	mockQueue := new(MockBulkJobEnqueuer)

	mockLeads.On("FindManyByNames", ctx, mock.Anything).Return([]entity.LeadRef{
		{Name: "CRM-LEAD-001", Email: "ana@example.com"},
	}, nil)
	mockStore.On("Save", ctx, mock.Anything).Return(nil)
	mockQueue.On("EnqueueBulkEmail", ctx, mock.Anything).Return(nil)

	uc := usecase.NewBulkSendUseCase(mockLeads, mockStore, mockQueue)
	result := uc.Execute(ctx, usecase.BulkSendInput{
		LeadNames:    []string{"CRM-LEAD-001"},
		TemplateName: "Welcome",
		// TestMode ausente de propósito
	})

	assert.True(t, result.Success)

	seeded := mockStore.Calls[0].Arguments.Get(1).(*entity.BulkJob)
	assert.True(t, seeded.TestMode)

	payload := mockQueue.Calls[0].Arguments.Get(1).(usecase.BulkEmailPayload)
	assert.True(t, payload.TestMode)
}

// TestBulkSendExplicitLive - só o "0" explícito desliga o test mode
func TestBulkSendExplicitLive(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockStore := new(MockJobStore)
	mockQueue := new(MockBulkJobEnqueuer)

	mockLeads.On("FindManyByNames", ctx, mock.Anything).Return([]entity.LeadRef{
		{Name: "CRM-LEAD-001", Email: "ana@example.com"},
	}, nil)
	mockStore.On("Save", ctx, mock.Anything).Return(nil)
	mockQueue.On("EnqueueBulkEmail", ctx, mock.Anything).Return(nil)

	uc := usecase.NewBulkSendUseCase(mockLeads, mockStore, mockQueue)
	result := uc.Execute(ctx, usecase.BulkSendInput{
		LeadNames:    []string{"CRM-LEAD-001"},
		TemplateName: "Welcome",
		TestMode:     "0",
	})

	assert.True(t, result.Success)

	payload := mockQueue.Calls[0].Arguments.Get(1).(usecase.BulkEmailPayload)
	assert.False(t, payload.TestMode)
}
