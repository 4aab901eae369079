package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

const (
	// TemplateEnquiryConfirmation names the submitter acknowledgement.
	TemplateEnquiryConfirmation = "enquiry_confirmation"
	// TemplateEnquiryAdminAlert names the administrator notification.
	TemplateEnquiryAdminAlert = "enquiry_admin_alert"
)

var templateFuncs = map[string]any{
	"join": strings.Join,
}

// Content is a rendered email ready to address.
type Content struct {
	Subject string
	HTML    string
	Text    string
}

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

// EnquiryConfirmationData fills the submitter acknowledgement.
type EnquiryConfirmationData struct {
	baseEmailData
	ReferenceNumber string
	FullName        string
	Organization    string
	Services        []string
}

// EnquiryAdminAlertData fills the administrator notification.
type EnquiryAdminAlertData struct {
	baseEmailData
	ReferenceNumber string
	FullName        string
	Email           string
	Phone           string
	Organization    string
	Services        []string
	SubmittedAt     string
	Device          string
	DetailURL       string
}

// RenderEnquiryConfirmation renders the acknowledgement sent to the submitter.
func RenderEnquiryConfirmation(data EnquiryConfirmationData) (Content, error) {
	data.baseEmailData = baseEmailData{
		Title:      "Thank you for your enquiry",
		Heading:    "Thank you for your enquiry",
		Subheading: "We've received your submission and will contact you within 24-48 hours.",
	}
	return render(TemplateEnquiryConfirmation, subjectEnquiryConfirmation, data)
}

// RenderEnquiryAdminAlert renders the notification sent to the administrator.
func RenderEnquiryAdminAlert(data EnquiryAdminAlertData) (Content, error) {
	data.baseEmailData = baseEmailData{
		Title:    "New enquiry",
		Heading:  fmt.Sprintf("New Enquiry (%s)", data.ReferenceNumber),
		CTALabel: "View full details",
		CTAURL:   data.DetailURL,
	}
	return render(TemplateEnquiryAdminAlert, fmt.Sprintf(subjectEnquiryAdminAlertFmt, data.ReferenceNumber), data)
}

func render(name, subject string, data any) (Content, error) {
	html, err := renderEmailTemplate(name+".html", data)
	if err != nil {
		return Content{}, err
	}
	text, err := renderTextTemplate(name+".txt", data)
	if err != nil {
		return Content{}, err
	}
	return Content{Subject: subject, HTML: html, Text: text}, nil
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := htmltemplate.New("base.html").Funcs(templateFuncs).ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderTextTemplate(name string, data any) (string, error) {
	tmpl, err := texttemplate.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse text template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute text template %s: %w", name, err)
	}
	return buf.String(), nil
}
