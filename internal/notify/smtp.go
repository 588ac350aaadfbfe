// Package notify delivers operator notifications. The only notification is
// the support message submitted through the contact form, sent by SMTP.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/iliyamo/movitour/internal/config"
)

// ErrInvalidReplyTo is returned when the submitter's address cannot be used
// as a Reply-To header.
var ErrInvalidReplyTo = errors.New("invalid reply-to address")

// SupportMessage is what a visitor submits through the support form.
type SupportMessage struct {
	Name    string
	Email   string
	Message string
}

// SMTPSender sends support messages through the configured SMTP account.
// Each call opens its own connection; there is no retry.
type SMTPSender struct {
	cfg     config.Mail
	timeout time.Duration
}

func NewSMTPSender(cfg config.Mail) *SMTPSender {
	return &SMTPSender{cfg: cfg, timeout: 15 * time.Second}
}

// SendSupportMessage composes msg and makes a single delivery attempt.
func (s *SMTPSender) SendSupportMessage(ctx context.Context, msg SupportMessage) error {
	m, err := s.compose(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Pass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(s.timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// compose builds the plain-text email. The sender account is the From
// address; the visitor goes in Reply-To so the operator can answer them
// directly.
func (s *SMTPSender) compose(msg SupportMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.cfg.User); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := m.To(s.cfg.To); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if err := m.ReplyTo(msg.Email); err != nil {
		return nil, ErrInvalidReplyTo
	}
	m.Subject("Nuevo mensaje de soporte de " + msg.Name)
	m.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("Nombre: %s\nEmail: %s\nMensaje: %s", msg.Name, msg.Email, msg.Message))
	return m, nil
}
