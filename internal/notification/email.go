package notification

import (
	"gopkg.in/gomail.v2"

	"github.com/navaro-app/navaro-api/internal/config"
)

type EmailSender struct {
	host string
	port int
	user string
	pass string
}

// NewEmailSender devolve nil quando o SMTP não está configurado; o canal
// fica desligado.
func NewEmailSender(cfg *config.Config) *EmailSender {
	if cfg.SMTPHost == "" || cfg.EmailUser == "" {
		return nil
	}
	return &EmailSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.EmailUser,
		pass: cfg.EmailPass,
	}
}

func (e *EmailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.user)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(e.host, e.port, e.user, e.pass)
	return d.DialAndSend(m)
}
