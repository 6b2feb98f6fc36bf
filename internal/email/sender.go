// Package email defines the verification-mail collaborator contract and
// its implementations.
package email

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Sender dispatches a verification code to an address. Implementations
// own their own timeouts; failures surface to the caller unchanged.
type Sender interface {
	Send(ctx context.Context, toAddress, code string) error
}

// SMTPConfig holds SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Addr returns the relay address.
func (c *SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPSender sends verification codes through an SMTP relay.
type SMTPSender struct {
	config *SMTPConfig
}

// NewSMTPSender creates an SMTPSender.
func NewSMTPSender(cfg *SMTPConfig) *SMTPSender {
	return &SMTPSender{config: cfg}
}

// Send delivers the verification code to toAddress.
func (s *SMTPSender) Send(ctx context.Context, toAddress, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Email verification code\r\n\r\nYour verification code is %s\r\n",
		s.config.From, toAddress, code,
	)

	if err := smtp.SendMail(s.config.Addr(), auth, s.config.From, []string{toAddress}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", toAddress, err)
	}
	return nil
}

// LogSender logs codes instead of sending them. Used in development when
// no SMTP relay is configured.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send logs the code.
func (s *LogSender) Send(ctx context.Context, toAddress, code string) error {
	s.log.Info("verification code issued",
		zap.String("to", toAddress),
		zap.String("code", code),
	)
	return nil
}
