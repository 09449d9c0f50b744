package queue

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
	"github.com/xavierca1/ligue-crm-mailer/internal/usecase"
)

// LeadEmailSender define o contrato do processamento de um lead individual
// dentro do job (o orquestrador de envio único).
type LeadEmailSender interface {
	SendToLead(ctx context.Context, input usecase.SendLeadEmailInput) usecase.SendResult
}

type Worker struct {
	Channel  *amqp.Channel
	Sender   LeadEmailSender
	JobStore usecase.JobStoreInterface

	// Throttle fixo entre leads para não saturar o transporte de email.
	// Serialização proposital, não acidente.
	InterItemDelay time.Duration
}

func NewWorker(ch *amqp.Channel, sender LeadEmailSender, jobStore usecase.JobStoreInterface) *Worker {
	return &Worker{
		Channel:        ch,
		Sender:         sender,
		JobStore:       jobStore,
		InterItemDelay: 200 * time.Millisecond,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload usecase.BulkEmailPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Bulk job %s recebido (%d leads, template '%s')",
				payload.JobID, len(payload.Leads), payload.TemplateName)

			w.ProcessJob(context.Background(), payload)

			// O resultado por lead já está persistido no snapshot do job;
			// a mensagem cumpriu o papel dela.
			d.Ack(false)
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

// ProcessJob executa a fase assíncrona do bulk: itera os leads em ordem de
// submissão, um por vez, e persiste o snapshot do job depois de CADA item —
// um crash no meio perde no máximo o progresso de um lead.
func (w *Worker) ProcessJob(ctx context.Context, payload usecase.BulkEmailPayload) {
	job := w.loadOrInitJob(ctx, payload)
	job.Status = entity.BulkJobStatusRunning
	w.saveSnapshot(ctx, job)

	total := len(payload.Leads)
	for i, lead := range payload.Leads {
		// Progresso nunca regride: calculado sobre o índice crescente
		job.Progress = int(math.Round(100 * float64(i+1) / float64(total)))

		if lead.Name == "" {
			job.FailedLeads = append(job.FailedLeads, entity.LeadFailure{
				Name:  "Unknown",
				Error: "Missing lead name in data",
			})
			w.saveSnapshot(ctx, job)
			continue
		}

		result := w.sendOne(ctx, payload, lead)

		if result.Success {
			job.SuccessfulLeads = append(job.SuccessfulLeads, entity.LeadSuccess{
				Name:            lead.Name,
				CommunicationID: result.CommunicationID,
			})
		} else {
			log.Printf("❌ [WORKER] Job %s: falha no lead %s: %s", payload.JobID, lead.Name, result.Message)
			job.FailedLeads = append(job.FailedLeads, entity.LeadFailure{
				Name:            lead.Name,
				Error:           result.Message,
				CommunicationID: result.CommunicationID,
			})
		}

		w.saveSnapshot(ctx, job)

		if w.InterItemDelay > 0 && i < total-1 {
			time.Sleep(w.InterItemDelay)
		}
	}

	if len(job.FailedLeads) == 0 {
		job.Status = entity.BulkJobStatusCompleted
	} else {
		job.Status = entity.BulkJobStatusWithErrors
	}
	job.Progress = 100
	now := time.Now()
	job.CompletedAt = &now
	w.saveSnapshot(ctx, job)

	log.Printf("✅ [WORKER] Job %s finalizado. Sucesso: %d, Falhas: %d",
		payload.JobID, len(job.SuccessfulLeads), len(job.FailedLeads))
}

// sendOne isola o processamento de um lead: erro lá dentro vira item falho,
// nunca aborta o restante do lote.
func (w *Worker) sendOne(ctx context.Context, payload usecase.BulkEmailPayload, lead entity.LeadRef) (result usecase.SendResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ [WORKER] Panic processando lead %s: %v", lead.Name, r)
			result = usecase.SendResult{Success: false, Message: "internal error while processing lead"}
		}
	}()

	return w.Sender.SendToLead(ctx, usecase.SendLeadEmailInput{
		LeadName:     lead.Name,
		TemplateName: payload.TemplateName,
		TestMode:     payload.TestMode,
		User:         usecase.UserContext{Email: payload.User},
	})
}

// loadOrInitJob recupera o snapshot semeado na submissão; se expirou (ou a
// submissão não gravou), reconstrói do payload.
func (w *Worker) loadOrInitJob(ctx context.Context, payload usecase.BulkEmailPayload) *entity.BulkJob {
	if job, err := w.JobStore.Get(ctx, payload.JobID); err == nil && job != nil {
		return job
	}
	return &entity.BulkJob{
		JobID:        payload.JobID,
		Status:       entity.BulkJobStatusQueued,
		LeadsCount:   len(payload.Leads),
		TemplateName: payload.TemplateName,
		TestMode:     payload.TestMode,
		User:         payload.User,
		Timestamp:    time.Now(),
	}
}

func (w *Worker) saveSnapshot(ctx context.Context, job *entity.BulkJob) {
	if err := w.JobStore.Save(ctx, job); err != nil {
		log.Printf("⚠️ [WORKER] Falha ao salvar snapshot do job %s: %v", job.JobID, err)
	}
}
