// Package notifier sends the two emails that follow a stored enquiry.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"enquiry_backend/internal/email"
	"enquiry_backend/internal/enquiries/repository"
	"enquiry_backend/platform/config"
	"enquiry_backend/platform/logger"
	"enquiry_backend/platform/metrics"
	"enquiry_backend/platform/phone"
	"enquiry_backend/platform/sanitize"

	"github.com/mssola/useragent"
	"golang.org/x/sync/errgroup"
)

const submittedAtLayout = "02 Jan 2006 15:04 MST"

var errNoRecipient = errors.New("no recipient configured")

// Delivery reports which notifications were accepted by the relay.
type Delivery struct {
	Client bool
	Admin  bool
}

// Notifier renders and sends enquiry emails. It never returns errors:
// failures are logged and reported as false.
type Notifier struct {
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates a Notifier.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, cfg: cfg, log: log}
}

// Send delivers one message within the configured timeout and reports success.
func (n *Notifier) Send(ctx context.Context, template string, msg email.Message) bool {
	err := n.send(ctx, msg)
	sent := err == nil

	n.log.WithContext(ctx).EmailEvent(template, msg.To, sent, err)
	metrics.RecordEmail(template, sent)
	return sent
}

func (n *Notifier) send(ctx context.Context, msg email.Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return errNoRecipient
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.GetEmailSendTimeout())
	defer cancel()

	// The relay may ignore ctx; the buffered channel lets the goroutine exit
	// on its own once the transport gives up.
	errCh := make(chan error, 1)
	go func() {
		errCh <- n.sender.Send(ctx, msg)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("send timed out: %w", ctx.Err())
	}
}

// NotifyCreated sends the client confirmation and the admin alert concurrently
// and waits for both. Request cancellation does not abort delivery.
func (n *Notifier) NotifyCreated(ctx context.Context, e repository.Enquiry) Delivery {
	ctx = context.WithoutCancel(ctx)

	var delivery Delivery
	var g errgroup.Group

	g.Go(func() error {
		delivery.Client = n.sendConfirmation(ctx, e)
		return nil
	})
	g.Go(func() error {
		delivery.Admin = n.sendAdminAlert(ctx, e)
		return nil
	})
	_ = g.Wait()

	return delivery
}

func (n *Notifier) sendConfirmation(ctx context.Context, e repository.Enquiry) bool {
	content, err := email.RenderEnquiryConfirmation(email.EnquiryConfirmationData{
		ReferenceNumber: e.ReferenceNumber,
		FullName:        sanitize.Unescape(e.FullName),
		Organization:    sanitize.Unescape(e.Organization),
		Services:        e.Services,
	})
	if err != nil {
		n.log.WithContext(ctx).EmailEvent(email.TemplateEnquiryConfirmation, e.Email, false, err)
		metrics.RecordEmail(email.TemplateEnquiryConfirmation, false)
		return false
	}

	return n.Send(ctx, email.TemplateEnquiryConfirmation, email.Message{
		To:      e.Email,
		Subject: content.Subject,
		HTML:    content.HTML,
		Text:    content.Text,
	})
}

func (n *Notifier) sendAdminAlert(ctx context.Context, e repository.Enquiry) bool {
	content, err := email.RenderEnquiryAdminAlert(email.EnquiryAdminAlertData{
		ReferenceNumber: e.ReferenceNumber,
		FullName:        sanitize.Unescape(e.FullName),
		Email:           e.Email,
		Phone:           phone.Display(e.Phone),
		Organization:    sanitize.Unescape(e.Organization),
		Services:        e.Services,
		SubmittedAt:     e.SubmissionDate.UTC().Format(submittedAtLayout),
		Device:          describeDevice(e.UserAgent),
		DetailURL:       n.detailURL(e),
	})
	if err != nil {
		n.log.WithContext(ctx).EmailEvent(email.TemplateEnquiryAdminAlert, n.cfg.GetAdminEmail(), false, err)
		metrics.RecordEmail(email.TemplateEnquiryAdminAlert, false)
		return false
	}

	return n.Send(ctx, email.TemplateEnquiryAdminAlert, email.Message{
		To:      n.cfg.GetAdminEmail(),
		ReplyTo: e.Email,
		Subject: content.Subject,
		HTML:    content.HTML,
		Text:    content.Text,
	})
}

func (n *Notifier) detailURL(e repository.Enquiry) string {
	return strings.TrimRight(n.cfg.GetAdminPortalURL(), "/") + "/enquiries/" + e.ID.String()
}

// describeDevice summarises a User-Agent header, e.g. "Firefox 131.0 on Linux x86_64".
func describeDevice(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	ua := useragent.New(raw)
	name, version := ua.Browser()
	desc := strings.TrimSpace(name + " " + version)
	if os := ua.OS(); os != "" {
		desc += " on " + os
	}

	switch {
	case ua.Bot():
		desc += " (bot)"
	case ua.Mobile():
		desc += " (mobile)"
	}
	return desc
}

