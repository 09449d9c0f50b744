package usecase

import "context"

// APIStatus expõe para a UI quais integrações estão configuradas. Só presença
// de configuração — nunca os valores das chaves.
type APIStatus struct {
	OpenRouterConfigured bool   `json:"openrouter_configured"`
	ResendConfigured     bool   `json:"resend_configured"`
	SMTPConfigured       bool   `json:"smtp_configured"`
	EmailService         string `json:"email_service"`
}

// PreferencesUseCase lê e grava a preferência de transporte de email e reporta
// o status das integrações.
type PreferencesUseCase struct {
	Delivery *DeliveryAdapter

	OpenRouterKey string
	SMTPHost      string
}

func NewPreferencesUseCase(delivery *DeliveryAdapter, openRouterKey, smtpHost string) *PreferencesUseCase {
	return &PreferencesUseCase{
		Delivery:      delivery,
		OpenRouterKey: openRouterKey,
		SMTPHost:      smtpHost,
	}
}

func (uc *PreferencesUseCase) GetPreference(ctx context.Context) string {
	return uc.Delivery.Preference(ctx)
}

// SetPreference aceita só os dois transportes conhecidos.
func (uc *PreferencesUseCase) SetPreference(ctx context.Context, service string) error {
	if service != TransportResend && service != TransportSMTP {
		return &ConfigurationError{Message: "Invalid email service: '" + service + "'. Must be 'resend' or 'smtp'."}
	}
	return uc.Delivery.Settings.Set(ctx, SettingEmailService, service)
}

func (uc *PreferencesUseCase) Status(ctx context.Context) APIStatus {
	return APIStatus{
		OpenRouterConfigured: uc.OpenRouterKey != "",
		ResendConfigured:     uc.Delivery.ResendAPIKey != "" && uc.Delivery.ResendFrom != "",
		SMTPConfigured:       uc.SMTPHost != "",
		EmailService:         uc.Delivery.Preference(ctx),
	}
}
