package services

import (
	"fmt"
	"time"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/config"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/logger"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers a single message. Best-effort: callers log failures
// and move on, they never surface them.
type EmailSender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
}

// NewEmailSender builds the SMTP sender from configuration. Without an
// SMTP host the returned sender silently discards messages, so a dev
// environment never needs a mail server.
func NewEmailSender(cfg *config.Config) EmailSender {
	if cfg.SMTPHost == "" {
		logger.Info("SMTP not configured, email notifications disabled", nil)
		return &disabledSender{}
	}

	return &smtpSender{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:    cfg.SMTPFrom,
		timeout: cfg.EmailTimeout,
	}
}

// Send delivers the message, bounded by the configured timeout. The SMTP
// dial runs in its own goroutine; on timeout the result is abandoned and
// the goroutine is left to finish on its own.
func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(s.timeout):
		return fmt.Errorf("email send to %s timed out after %s", to, s.timeout)
	}
}

type disabledSender struct{}

func (s *disabledSender) Send(to, subject, body string) error {
	return nil
}
