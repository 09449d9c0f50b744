package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailSender é o transporte SMTP (caminho "smtp" da preferência de envio).
// Semântica send-now: a entrega acontece dentro da chamada.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

func (s *EmailSender) Send(sender, senderName string, recipients, cc, bcc []string, subject, html string) error {
	if s.Host == "" {
		return fmt.Errorf("smtp não configurado (MAIL_HOST vazio)")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", sender, senderName)
	m.SetHeader("To", recipients...)
	if len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	if len(bcc) > 0 {
		m.SetHeader("Bcc", bcc...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
