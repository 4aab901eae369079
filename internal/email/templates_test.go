package email

import (
	"strings"
	"testing"
)

func TestRenderEnquiryConfirmation(t *testing.T) {
	content, err := RenderEnquiryConfirmation(EnquiryConfirmationData{
		ReferenceNumber: "ENQ-2610-004211",
		FullName:        "Thandi <b>Nkosi</b>",
		Organization:    "Acme & Sons",
		Services:        []string{"web-development", "cloud-migration"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if content.Subject != "Thank you for your enquiry - SABI" {
		t.Fatalf("unexpected subject %q", content.Subject)
	}
	for _, want := range []string{
		"ENQ-2610-004211",
		"Thandi &lt;b&gt;Nkosi&lt;/b&gt;",
		"Acme &amp; Sons",
		"web-development, cloud-migration",
		"24-48 hours",
	} {
		if !strings.Contains(content.HTML, want) {
			t.Fatalf("html body missing %q", want)
		}
	}
	if strings.Contains(content.HTML, "<b>Nkosi</b>") {
		t.Fatalf("markup from input must not survive into html body")
	}
	if !strings.Contains(content.Text, "Organization: Acme & Sons") {
		t.Fatalf("text body should carry the raw value, got:\n%s", content.Text)
	}
}

func TestRenderEnquiryAdminAlert(t *testing.T) {
	content, err := RenderEnquiryAdminAlert(EnquiryAdminAlertData{
		ReferenceNumber: "ENQ-2610-000007",
		FullName:        "Thandi Nkosi",
		Email:           "thandi@example.co.za",
		Phone:           "+27821234567",
		Organization:    "Acme",
		Services:        []string{"web-development"},
		SubmittedAt:     "18 Oct 2026 09:30 UTC",
		Device:          "Firefox 131.0 on Linux x86_64",
		DetailURL:       "https://admin.example.co.za/enquiries/0b8c1f4e-2d7a-4f8e-9a51-3c9d2b7e6a10",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if content.Subject != "New Enquiry Received - ENQ-2610-000007" {
		t.Fatalf("unexpected subject %q", content.Subject)
	}
	for _, want := range []string{
		"New Enquiry (ENQ-2610-000007)",
		"thandi@example.co.za",
		"+27821234567",
		`href="https://admin.example.co.za/enquiries/0b8c1f4e-2d7a-4f8e-9a51-3c9d2b7e6a10"`,
		"Firefox 131.0 on Linux x86_64",
	} {
		if !strings.Contains(content.HTML, want) {
			t.Fatalf("html body missing %q", want)
		}
	}
	if !strings.Contains(content.Text, "View full details: https://admin.example.co.za/enquiries/") {
		t.Fatalf("text body missing deep link:\n%s", content.Text)
	}
}

func TestRenderEnquiryAdminAlertOmitsEmptyOptionalRows(t *testing.T) {
	content, err := RenderEnquiryAdminAlert(EnquiryAdminAlertData{
		ReferenceNumber: "ENQ-2610-000008",
		FullName:        "Sipho",
		Email:           "sipho@example.co.za",
		Organization:    "Acme",
		Services:        []string{"consulting"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(content.HTML, "Device:") || strings.Contains(content.Text, "Phone:") {
		t.Fatalf("empty optional rows should be omitted")
	}
}
