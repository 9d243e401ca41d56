package auth

import (
	"fmt"
	"net/smtp"

	"vet-clinic-api/config"
)

// Mailer delivers the single-use tokens of the credential lifecycle. Handlers
// only depend on this interface; tests substitute a recording stub.
type Mailer interface {
	SendConfirmation(to string, token string) error
	SendRecovery(to string, token string) error
}

// SMTPMailer sends plain-text mail through the SMTP relay named in the
// configuration.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendConfirmation(to string, token string) error {
	link := fmt.Sprintf("%s/confirmar/%s", m.cfg.FrontendURL, token)
	body := fmt.Sprintf("Click the following link to confirm your account:\n\n%s", link)
	return m.send(to, "Confirm your account", body)
}

func (m *SMTPMailer) SendRecovery(to string, token string) error {
	link := fmt.Sprintf("%s/recuperar-password/%s", m.cfg.FrontendURL, token)
	body := fmt.Sprintf("Click the following link to reset your password:\n\n%s", link)
	return m.send(to, "Reset your password", body)
}

func (m *SMTPMailer) send(to string, subject string, body string) error {
	auth := smtp.PlainAuth("", m.cfg.SMTPFrom, m.cfg.SMTPPassword, m.cfg.SMTPHost)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.cfg.SMTPFrom + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	return smtp.SendMail(addr, auth, m.cfg.SMTPFrom, []string{to}, message)
}
