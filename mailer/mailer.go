package mailer

import (
	"net/smtp"
	"os"
)

// Mailer is the mail-sending capability handed to the auth controllers.
// It is injected explicitly; nothing in the codebase reaches for a global
// transport.
type Mailer interface {
	Send(to, subject, html string) error
}

type smtpMailer struct{}

// NewSMTP returns a Mailer backed by the SMTP_HOST/SMTP_PORT/SMTP_FROM
// environment settings.
func NewSMTP() Mailer { return &smtpMailer{} }

func (s *smtpMailer) Send(to, subject, html string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n" +
		html

	return smtp.SendMail(host+":"+port, nil, from, []string{to}, []byte(msg))
}

// Noop discards every message. Used in tests.
type Noop struct{}

func (Noop) Send(to, subject, html string) error { return nil }
