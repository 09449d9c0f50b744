package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

const (
	SettingEmailService = "email_sending_service"

	TransportResend = "resend"
	TransportSMTP   = "smtp"
)

// DeliveryAdapter despacha um email pronto por um dos dois transportes
// intercambiáveis, escolhido pela preferência persistida (default: resend).
type DeliveryAdapter struct {
	Settings SettingsRepositoryInterface
	Direct   DirectEmailClientInterface
	SMTP     SMTPSenderInterface

	ResendFrom   string
	ResendAPIKey string
}

func NewDeliveryAdapter(settings SettingsRepositoryInterface, direct DirectEmailClientInterface, smtp SMTPSenderInterface, resendFrom, resendAPIKey string) *DeliveryAdapter {
	return &DeliveryAdapter{
		Settings:     settings,
		Direct:       direct,
		SMTP:         smtp,
		ResendFrom:   resendFrom,
		ResendAPIKey: resendAPIKey,
	}
}

// Preference resolve a preferência atual, caindo para resend quando nada foi
// configurado (ou o settings store falhou na leitura).
func (d *DeliveryAdapter) Preference(ctx context.Context) string {
	pref, err := d.Settings.Get(ctx, SettingEmailService)
	if err != nil || pref == "" {
		return TransportResend
	}
	return pref
}

// Deliver envia a comunicação já gravada (status Open). Quem grava e atualiza
// o registro é o orquestrador; aqui é só transporte.
func (d *DeliveryAdapter) Deliver(ctx context.Context, comm *entity.Communication) error {
	switch d.Preference(ctx) {
	case TransportSMTP:
		return d.deliverSMTP(comm)
	default:
		return d.deliverDirect(ctx, comm)
	}
}

func (d *DeliveryAdapter) deliverDirect(ctx context.Context, comm *entity.Communication) error {
	if d.ResendAPIKey == "" {
		return &ConfigurationError{Message: "Resend API Key missing"}
	}
	from := d.ResendFrom
	if from == "" {
		return &ConfigurationError{Message: "Resend default from address missing"}
	}

	_, err := d.Direct.Send(ctx, from, splitAddressList(comm.Recipients), comm.Subject, comm.Content)
	if err != nil {
		return &DeliveryError{Message: err.Error()}
	}
	return nil
}

func (d *DeliveryAdapter) deliverSMTP(comm *entity.Communication) error {
	err := d.SMTP.Send(
		comm.Sender, comm.SenderName,
		splitAddressList(comm.Recipients), splitAddressList(comm.CC), splitAddressList(comm.BCC),
		comm.Subject, comm.Content,
	)
	if err != nil {
		return &DeliveryError{Message: err.Error()}
	}
	return nil
}

func splitAddressList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
