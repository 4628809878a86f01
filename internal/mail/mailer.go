package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"artfeeds/internal/config"
)

// Mailer sends transactional mail.
type Mailer interface {
	SendOTP(to, code string) error
}

// New returns an SMTP mailer when SMTP is configured, otherwise a logging
// mailer so password-reset flows still work in development.
func New(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{}
	}
	return &smtpMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost),
		from: cfg.SMTPFrom,
	}
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func (m *smtpMailer) SendOTP(to, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your password reset code\r\n\r\n"+
		"Your verification code is %s. It expires in 5 minutes.\r\n", m.from, to, code)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

type logMailer struct{}

func (m *logMailer) SendOTP(to, code string) error {
	log.Printf("mail: OTP for %s is %s (SMTP not configured)", to, code)
	return nil
}
