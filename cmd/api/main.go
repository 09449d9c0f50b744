package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm-mailer/internal/config"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/cache"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/database"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/integration/openrouter"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/integration/resend"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/mail"
	"github.com/xavierca1/ligue-crm-mailer/internal/infra/queue"
	"github.com/xavierca1/ligue-crm-mailer/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	jobStore := cache.NewJobStore(cfg.RedisAddr, cfg.RedisDB)
	if err := jobStore.MigrateLegacyKeys(context.Background()); err != nil {
		log.Printf("⚠️ Migração de chaves legadas falhou (seguindo sem migrar): %v", err)
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	promptRepo := database.NewPromptTemplateRepository(db)
	emailTplRepo := database.NewEmailTemplateRepository(db)
	commRepo := database.NewCommunicationRepository(db)
	settingsRepo := database.NewSettingsRepository(db)

	// 2. Gateways e Adapters
	aiClient := openrouter.NewClient(cfg.OpenRouterKey, cfg.OpenRouterBaseURL, cfg.SiteURL)
	resendClient := resend.NewClient(cfg.ResendAPIKey)
	smtpSender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	shell := mail.NewTemplateRenderer(cfg.SenderName, cfg.SiteURL)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	delivery := usecase.NewDeliveryAdapter(settingsRepo, resendClient, smtpSender, cfg.ResendFrom, cfg.ResendAPIKey)
	promptAssembler := usecase.NewPromptAssembler(promptRepo)

	// 3. UseCases
	generateUC := usecase.NewGenerateContentUseCase(leadRepo, promptAssembler, aiClient, cfg.OpenRouterKey)
	sendLeadUC := usecase.NewSendLeadEmailUseCase(
		leadRepo, emailTplRepo, commRepo,
		promptAssembler, aiClient, shell, delivery,
		cfg.OpenRouterKey, cfg.SenderName, cfg.TestRecipient,
	)
	sendAdhocUC := usecase.NewSendAdhocEmailUseCase(
		leadRepo, emailTplRepo, commRepo, shell, delivery,
		cfg.SenderName, cfg.TestRecipient,
	)
	sendTestUC := usecase.NewSendTestEmailUseCase(leadRepo, shell, resendClient, cfg.ResendAPIKey, cfg.ResendFrom, cfg.SenderName)
	bulkSendUC := usecase.NewBulkSendUseCase(leadRepo, jobStore, producer)
	jobStatusUC := usecase.NewJobStatusUseCase(jobStore)
	preferencesUC := usecase.NewPreferencesUseCase(delivery, cfg.OpenRouterKey, cfg.SMTPHost)

	// 4. Worker (consome a fila de bulk e processa lead a lead)
	worker := queue.NewWorker(rabbitMQ.Ch, sendLeadUC, jobStore)
	go worker.Start(queue.QueueName)

	// 5. Handlers
	aiEmailHandler := handlers.NewAIEmailHandler(generateUC, sendAdhocUC, sendTestUC, preferencesUC, leadRepo, promptRepo)
	bulkHandler := handlers.NewBulkHandler(bulkSendUC, jobStatusUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, jobStore, cfg.OpenRouterKey, cfg.ResendAPIKey)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-Email", "X-User-Name"},
	}))

	r.Route("/api/ai-email", func(r chi.Router) {
		r.Post("/generate", aiEmailHandler.Generate)
		r.Post("/send", aiEmailHandler.Send)
		r.Post("/test-send", aiEmailHandler.TestSend)
		r.Get("/leads/{leadID}/structure", aiEmailHandler.LeadStructure)
		r.Get("/preference", aiEmailHandler.GetPreference)
		r.Put("/preference", aiEmailHandler.SetPreference)
		r.Get("/status", aiEmailHandler.Status)
		r.Put("/prompt-template/default", aiEmailHandler.SetDefaultTemplate)

		r.Post("/bulk", bulkHandler.Submit)
		r.Get("/bulk", bulkHandler.List)
		r.Get("/bulk/last/leads", bulkHandler.LastLeads)
		r.Get("/bulk/{jobID}", bulkHandler.Status)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + cfg.HTTPPort
	log.Printf("🔥 Server CRM AI Mailer rodando na porta %s", port)
	http.ListenAndServe(port, r)
}
