package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"enquiry_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
// A new connection is dialled per message, so one sender is safe for concurrent use.
type SMTPSender struct {
	host        string
	port        int
	username    string
	password    string
	fromName    string
	fromEmail   string
	secure      bool
	verifyTLS   bool
	dialTimeout time.Duration
}

// NewSMTPSender creates a new SMTPSender from the mail settings.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:        cfg.GetEmailHost(),
		port:        cfg.GetEmailPort(),
		username:    cfg.GetEmailUsername(),
		password:    cfg.GetEmailPassword(),
		fromName:    cfg.GetEmailFromName(),
		fromEmail:   cfg.GetEmailFromAddress(),
		secure:      cfg.GetEmailSecure(),
		verifyTLS:   cfg.IsProduction(),
		dialTimeout: cfg.GetEmailSendTimeout(),
	}
}

func (s *SMTPSender) newClient() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTimeout(s.dialTimeout),
		gomail.WithTLSConfig(&tls.Config{
			ServerName: s.host,
			MinVersion: tls.VersionTLS12,
			// Self-signed relays are common in staging.
			InsecureSkipVerify: !s.verifyTLS, //nolint:gosec
		}),
	}
	if s.secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return client, nil
}

func (s *SMTPSender) buildMessage(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)

	if msg.Text != "" {
		m.SetBodyString(gomail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	} else {
		m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := s.newClient()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// Verify dials the relay and authenticates without sending anything.
func (s *SMTPSender) Verify(ctx context.Context) error {
	client, err := s.newClient()
	if err != nil {
		return err
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	return client.Close()
}
