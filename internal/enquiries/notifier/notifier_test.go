package notifier

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"enquiry_backend/internal/email"
	"enquiry_backend/internal/enquiries/repository"
	"enquiry_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const adminAddress = "admin@example.co.za"

type testNotificationConfig struct {
	adminEmail string
	timeout    time.Duration
}

func (c testNotificationConfig) GetAdminEmail() string              { return c.adminEmail }
func (c testNotificationConfig) GetAdminPortalURL() string          { return "https://admin.example.co.za/" }
func (c testNotificationConfig) GetEmailSendTimeout() time.Duration { return c.timeout }

type fakeSender struct {
	mu    sync.Mutex
	sent  []email.Message
	fail  map[string]error
	block map[string]bool
}

func (s *fakeSender) Send(ctx context.Context, msg email.Message) error {
	if s.block[msg.To] {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := s.fail[msg.To]; err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *fakeSender) messageTo(addr string) (email.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.sent {
		if m.To == addr {
			return m, true
		}
	}
	return email.Message{}, false
}

func testEnquiry() repository.Enquiry {
	return repository.Enquiry{
		ID:              uuid.MustParse("0b8c1f4e-2d7a-4f8e-9a51-3c9d2b7e6a10"),
		ReferenceNumber: "ENQ-2610-004211",
		FullName:        "Thandi &amp; Co",
		Organization:    "Acme &lt;Pty&gt;",
		Email:           "thandi@example.co.za",
		Phone:           "0821234567",
		Services:        []string{"web-development", "cloud-migration"},
		SubmissionDate:  time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC),
		UserAgent:       "Mozilla/5.0 (X11; Linux x86_64; rv:131.0) Gecko/20100101 Firefox/131.0",
		Status:          "new",
	}
}

func newTestNotifier(sender email.Sender, timeout time.Duration) *Notifier {
	return New(sender, testNotificationConfig{adminEmail: adminAddress, timeout: timeout}, logger.Discard())
}

func TestNotifyCreatedSendsBoth(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &fakeSender{}
	delivery := newTestNotifier(sender, time.Second).NotifyCreated(context.Background(), testEnquiry())

	assert.Equal(t, Delivery{Client: true, Admin: true}, delivery)

	client, ok := sender.messageTo("thandi@example.co.za")
	require.True(t, ok)
	assert.Equal(t, "Thank you for your enquiry - SABI", client.Subject)
	assert.Contains(t, client.HTML, "ENQ-2610-004211")
	assert.Contains(t, client.HTML, "Acme &lt;Pty&gt;", "stored escapes must not be escaped twice")
	assert.NotContains(t, client.HTML, "&amp;lt;")
	assert.Contains(t, client.Text, "Acme <Pty>")

	admin, ok := sender.messageTo(adminAddress)
	require.True(t, ok)
	assert.Equal(t, "New Enquiry Received - ENQ-2610-004211", admin.Subject)
	assert.Equal(t, "thandi@example.co.za", admin.ReplyTo)
	assert.Contains(t, admin.HTML, "https://admin.example.co.za/enquiries/0b8c1f4e-2d7a-4f8e-9a51-3c9d2b7e6a10")
	assert.Contains(t, admin.HTML, "+27 82 123 4567")
	assert.Contains(t, admin.HTML, "18 Oct 2026 09:30 UTC")
	assert.Contains(t, admin.HTML, "Firefox")
}

func TestNotifyCreatedIsolatesFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &fakeSender{fail: map[string]error{adminAddress: errors.New("550 mailbox unavailable")}}
	delivery := newTestNotifier(sender, time.Second).NotifyCreated(context.Background(), testEnquiry())

	assert.Equal(t, Delivery{Client: true, Admin: false}, delivery)
}

func TestNotifyCreatedBoundsSlowRelay(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &fakeSender{block: map[string]bool{"thandi@example.co.za": true}}

	start := time.Now()
	delivery := newTestNotifier(sender, 50*time.Millisecond).NotifyCreated(context.Background(), testEnquiry())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, Delivery{Client: false, Admin: true}, delivery)
}

func TestNotifyCreatedSurvivesRequestCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := &fakeSender{}
	delivery := newTestNotifier(sender, time.Second).NotifyCreated(ctx, testEnquiry())

	assert.Equal(t, Delivery{Client: true, Admin: true}, delivery)
}

func TestNotifyCreatedWithoutAdminAddress(t *testing.T) {
	sender := &fakeSender{}
	n := New(sender, testNotificationConfig{timeout: time.Second}, logger.Discard())

	delivery := n.NotifyCreated(context.Background(), testEnquiry())
	assert.Equal(t, Delivery{Client: true, Admin: false}, delivery)
}

func TestNotifyCreatedDisabledTransport(t *testing.T) {
	delivery := newTestNotifier(email.DisabledSender{}, time.Second).NotifyCreated(context.Background(), testEnquiry())
	assert.Equal(t, Delivery{}, delivery)
}

func TestDescribeDevice(t *testing.T) {
	assert.Equal(t, "", describeDevice(""))

	desktop := describeDevice("Mozilla/5.0 (X11; Linux x86_64; rv:131.0) Gecko/20100101 Firefox/131.0")
	assert.True(t, strings.HasPrefix(desktop, "Firefox 131.0"), desktop)
	assert.NotContains(t, desktop, "(mobile)")

	mobile := describeDevice("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	assert.Contains(t, mobile, "(mobile)")

	bot := describeDevice("Googlebot/2.1 (+http://www.google.com/bot.html)")
	assert.Contains(t, bot, "(bot)")
}
