// Package mail composes and delivers operator notifications for contact
// form submissions.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Sender delivers a fully formatted message.
// rawMessage carries every header and the encoded body.
type Sender interface {
	Send(ctx context.Context, to []string, subject string, rawMessage []byte) error
}

// SMTPConfig holds the settings for SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // envelope sender
}

// SMTPSender delivers through an authenticated SMTP relay. STARTTLS is
// negotiated when the server offers it.
type SMTPSender struct {
	auth smtp.Auth
	addr string
	from string

	// sendMail is smtp.SendMail outside of tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender returns an SMTPSender for cfg.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		auth:     smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from:     cfg.From,
		sendMail: smtp.SendMail,
	}
}

// Send delivers rawMessage to every recipient in to.
func (s *SMTPSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.sendMail(s.addr, s.auth, s.from, to, rawMessage); err != nil {
		return fmt.Errorf("smtp send to %v: %w", to, err)
	}
	slog.InfoContext(ctx, "notification sent", "transport", "smtp", "to", to, "subject", subject)
	return nil
}

// LoggingSender writes the message to the log instead of sending it.
type LoggingSender struct {
	logger *slog.Logger
}

// NewLoggingSender returns a LoggingSender. A nil logger uses slog.Default().
func NewLoggingSender(logger *slog.Logger) *LoggingSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingSender{logger: logger.With("component", "mail")}
}

func (s *LoggingSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	s.logger.InfoContext(ctx, "notification logged",
		"to", to,
		"subject", subject,
		"raw", string(rawMessage),
	)
	return nil
}
