// Package email delivers rendered notification emails over SMTP.
package email

import (
	"context"
	"errors"

	"enquiry_backend/platform/config"
)

// ErrDisabled is returned by every send while delivery is switched off.
var ErrDisabled = errors.New("email delivery is disabled")

// Message is one outbound email. Text is optional.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// DisabledSender refuses every message so callers report it as not sent.
type DisabledSender struct{}

func (DisabledSender) Send(context.Context, Message) error {
	return ErrDisabled
}

// NewSender returns the SMTP transport, or DisabledSender when EMAIL_ENABLED is false.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return DisabledSender{}, nil
	}
	if cfg.GetEmailHost() == "" || cfg.GetEmailFromAddress() == "" {
		return nil, errors.New("email host and from address are required")
	}
	return NewSMTPSender(cfg), nil
}
