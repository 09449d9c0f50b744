package queue_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/queue"
	"github.com/xavierca1/ligue-crm-mailer/internal/usecase"
)

// fakeSender devolve resultados pré-programados por nome de lead.
type fakeSender struct {
	results map[string]usecase.SendResult
	calls   []string
}

func (f *fakeSender) SendToLead(ctx context.Context, input usecase.SendLeadEmailInput) usecase.SendResult {
	f.calls = append(f.calls, input.LeadName)
	if r, ok := f.results[input.LeadName]; ok {
		return r
	}
	return usecase.SendResult{Success: true, CommunicationID: "comm-" + input.LeadName}
}

// fakeJobStore guarda cada snapshot salvo, na ordem.
type fakeJobStore struct {
	snapshots []entity.BulkJob
}

func (f *fakeJobStore) Save(ctx context.Context, job *entity.BulkJob) error {
	f.snapshots = append(f.snapshots, *job)
	return nil
}

func (f *fakeJobStore) Get(ctx context.Context, jobID string) (*entity.BulkJob, error) {
	return nil, nil
}

func (f *fakeJobStore) List(ctx context.Context) ([]entity.BulkJob, error) {
	return nil, nil
}

func newTestWorker(sender *fakeSender, store *fakeJobStore) *queue.Worker {
	w := queue.NewWorker(nil, sender, store)
	w.InterItemDelay = 0 // sem throttle nos testes
	return w
}

func bulkPayload(leads ...entity.LeadRef) usecase.BulkEmailPayload {
	return usecase.BulkEmailPayload{
		JobID:        "job-test-1",
		TemplateName: "Welcome",
		Leads:        leads,
	}
}

// TestProcessJobAllSuccess - todos os leads enviados: status completed,
// progresso 100, CompletedAt preenchido
func TestProcessJobAllSuccess(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeJobStore{}
	w := newTestWorker(sender, store)

	w.ProcessJob(context.Background(), bulkPayload(
		entity.LeadRef{Name: "L1", Email: "a@x.com"},
		entity.LeadRef{Name: "L2", Email: "b@x.com"},
	))

	final := store.snapshots[len(store.snapshots)-1]
	assert.Equal(t, entity.BulkJobStatusCompleted, final.Status)
	assert.Equal(t, 100, final.Progress)
	assert.Len(t, final.SuccessfulLeads, 2)
	assert.Empty(t, final.FailedLeads)
	assert.NotNil(t, final.CompletedAt)
	assert.Equal(t, []string{"L1", "L2"}, sender.calls)
}

// TestProcessJobPartialFailureIsolated - falha num lead não interrompe os
// demais; o resultado final separa sucessos e falhas
func TestProcessJobPartialFailureIsolated(t *testing.T) {
	sender := &fakeSender{results: map[string]usecase.SendResult{
		"L2": {Success: false, Message: "Lead 'L2' has no email address."},
	}}
	store := &fakeJobStore{}
	w := newTestWorker(sender, store)

	w.ProcessJob(context.Background(), bulkPayload(
		entity.LeadRef{Name: "L1", Email: "a@x.com"},
		entity.LeadRef{Name: "L2"},
		entity.LeadRef{Name: "L3", Email: "c@x.com"},
	))

	final := store.snapshots[len(store.snapshots)-1]
	assert.Equal(t, entity.BulkJobStatusWithErrors, final.Status)
	assert.Len(t, final.SuccessfulLeads, 2)
	assert.Len(t, final.FailedLeads, 1)
	assert.Equal(t, "L2", final.FailedLeads[0].Name)
	assert.Contains(t, final.FailedLeads[0].Error, "no email address")
	// L3 processado mesmo depois da falha de L2
	assert.Equal(t, []string{"L1", "L2", "L3"}, sender.calls)
}

// TestProcessJobProgressMonotonic - snapshot salvo a cada item e progresso
// nunca regride
func TestProcessJobProgressMonotonic(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeJobStore{}
	w := newTestWorker(sender, store)

	w.ProcessJob(context.Background(), bulkPayload(
		entity.LeadRef{Name: "L1"},
		entity.LeadRef{Name: "L2"},
		entity.LeadRef{Name: "L3"},
		entity.LeadRef{Name: "L4"},
	))

	// 1 snapshot "running" + 4 por item + 1 final
	assert.GreaterOrEqual(t, len(store.snapshots), 6)

	last := -1
	for _, snap := range store.snapshots {
		assert.GreaterOrEqual(t, snap.Progress, last, "progresso regrediu")
		last = snap.Progress
	}
	assert.Equal(t, 100, store.snapshots[len(store.snapshots)-1].Progress)
}

// TestProcessJobMissingLeadName - item sem nome vira falha "Unknown" sem
// chamar o orquestrador
func TestProcessJobMissingLeadName(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeJobStore{}
	w := newTestWorker(sender, store)

	w.ProcessJob(context.Background(), bulkPayload(
		entity.LeadRef{Name: ""},
		entity.LeadRef{Name: "L2"},
	))

	final := store.snapshots[len(store.snapshots)-1]
	assert.Len(t, final.FailedLeads, 1)
	assert.Equal(t, "Unknown", final.FailedLeads[0].Name)
	assert.Equal(t, "Missing lead name in data", final.FailedLeads[0].Error)
	assert.Equal(t, []string{"L2"}, sender.calls)
}
