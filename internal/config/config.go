package config

import (
	"os"
	"strconv"
)

// Config concentra tudo que vem do ambiente. Construída uma vez no main e
// injetada; nenhum componente de negócio lê os.Getenv por conta própria.
type Config struct {
	HTTPPort    string
	DatabaseURL string

	RedisAddr string
	RedisDB   int

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	OpenRouterKey     string
	OpenRouterBaseURL string

	ResendAPIKey string
	ResendFrom   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	SenderName string
	SenderUser string // identidade do usuário operador (email)

	// Destinatário usado quando o test mode está ativo e o usuário não tem email
	TestRecipient string

	SiteURL string
}

func Load() Config {
	return Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		RabbitUser: getEnv("RABBITMQ_USER", "guest"),
		RabbitPass: getEnv("RABBITMQ_PASS", "guest"),
		RabbitHost: getEnv("RABBITMQ_HOST", "localhost"),
		RabbitPort: getEnv("RABBITMQ_PORT", "5672"),

		OpenRouterKey:     os.Getenv("OPENROUTER_KEY"),
		OpenRouterBaseURL: getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		ResendFrom:   os.Getenv("RESEND_DEFAULT_FROM"),

		SMTPHost: os.Getenv("MAIL_HOST"),
		SMTPPort: getEnvInt("MAIL_PORT", 587),
		SMTPUser: os.Getenv("MAIL_USER"),
		SMTPPass: os.Getenv("MAIL_PASS"),

		SenderName: getEnv("SENDER_NAME", "Ligue CRM"),
		SenderUser: getEnv("SENDER_USER", "Administrator"),

		TestRecipient: os.Getenv("TEST_EMAIL_RECIPIENT"),

		SiteURL: getEnv("SITE_URL", "http://localhost:8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
