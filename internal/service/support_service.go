package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/movitour/internal/notify"
)

type SupportSender interface {
	SendSupportMessage(ctx context.Context, msg notify.SupportMessage) error
}

// SupportService forwards contact form submissions to the operator.
type SupportService struct {
	sender SupportSender
}

func NewSupportService(sender SupportSender) *SupportService {
	return &SupportService{sender: sender}
}

func (s *SupportService) Send(ctx context.Context, name, email, message string) error {
	msg := notify.SupportMessage{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: message,
	}
	if msg.Name == "" || msg.Email == "" || strings.TrimSpace(msg.Message) == "" {
		return ErrMissingSupportFields
	}

	err := s.sender.SendSupportMessage(ctx, msg)
	if errors.Is(err, notify.ErrInvalidReplyTo) {
		return ErrInvalidSupportEmail
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	return nil
}
