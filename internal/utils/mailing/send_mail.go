package mailing

import (
	"gopkg.in/gomail.v2"

	"pantryfit-backend/internal/config"
)

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	mailer struct {
		cfg config.SMTPConfig
	}
)

func NewMailer(cfg config.SMTPConfig) Mailer {
	return &mailer{cfg: cfg}
}

func (m *mailer) SendMail(toEmail string, subject string, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.cfg.AuthEmail)
	message.SetHeader("To", toEmail)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	dialer := gomail.NewDialer(
		m.cfg.Host,
		m.cfg.Port,
		m.cfg.AuthEmail,
		m.cfg.AuthPassword,
	)

	return dialer.DialAndSend(message)
}
