package email

import (
	"fmt"
	"net/smtp"

	"github.com/sneakhub/sneaker-shop-backend/internal/config"
)

// Sender delivers a rendered message. Callers treat failures as
// best-effort: a lost confirmation email never rolls back an order.
type Sender interface {
	Send(to, subject, html string) error
}

// SMTPSender sends through the SMTP relay named in config.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.EmailHost,
		port:     cfg.EmailPort,
		username: cfg.EmailUsername,
		password: cfg.EmailPassword,
		from:     cfg.EmailFrom,
	}
}

func (s *SMTPSender) Send(to, subject, html string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.from, to, subject, html)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	return smtp.SendMail(s.host+":"+s.port, auth, s.username, []string{to}, []byte(msg))
}
