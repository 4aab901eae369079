package transport

import (
	"time"

	"github.com/google/uuid"
)

// ── Shared sections ───────────────────────────────────────────────────────────

// BasicInfo identifies the submitter and their organization.
type BasicInfo struct {
	FullName         string `json:"fullName" validate:"notblank,max=200"`
	JobTitle         string `json:"jobTitle" validate:"max=200"`
	Organization     string `json:"organization" validate:"notblank,max=200"`
	Industry         string `json:"industry" validate:"notblank,max=100"`
	OrganizationSize string `json:"organizationSize" validate:"notblank,max=100"`
	OrganizationType string `json:"organizationType" validate:"notblank,max=100"`
}

// ContactInfo is how the submitter can be reached.
type ContactInfo struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" validate:"required,phone10"`
	Province string `json:"province" validate:"notblank,max=100"`
	City     string `json:"city" validate:"notblank,max=100"`
	Address  string `json:"address" validate:"max=500"`
}

// ServiceRequirements describes what the submitter is asking for.
type ServiceRequirements struct {
	Services            []string `json:"services" validate:"required,min=1,dive,notblank,max=100"`
	OtherServiceDetails string   `json:"otherServiceDetails" validate:"max=2000"`
	ProjectDetails      string   `json:"projectDetails" validate:"notblank,max=5000"`
	BudgetRange         string   `json:"budgetRange" validate:"max=100"`
	Timeline            string   `json:"timeline" validate:"max=100"`
}

// AdditionalInfo is optional context stored as submitted.
type AdditionalInfo struct {
	CurrentChallenges string `json:"currentChallenges" validate:"max=2000"`
	ExpectedOutcomes  string `json:"expectedOutcomes" validate:"max=2000"`
	ReferralSource    string `json:"referralSource" validate:"max=200"`
	ExistingSystems   string `json:"existingSystems" validate:"max=2000"`
	MarketingConsent  bool   `json:"marketingConsent"`
}

// Metadata is server-assigned and never accepted from clients.
type Metadata struct {
	SubmissionDate time.Time `json:"submissionDate"`
	UserAgent      string    `json:"userAgent"`
	IPAddress      string    `json:"ipAddress"`
	Status         string    `json:"status"`
}

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateEnquiryRequest is the public submission body.
type CreateEnquiryRequest struct {
	BasicInfo           BasicInfo           `json:"basicInfo"`
	ContactInfo         ContactInfo         `json:"contactInfo"`
	ServiceRequirements ServiceRequirements `json:"serviceRequirements"`
	AdditionalInfo      AdditionalInfo      `json:"additionalInfo"`
}

// UpdateStatusRequest is the admin triage body.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,enquirystatus"`
}

// ListEnquiriesRequest carries the admin listing query string.
type ListEnquiriesRequest struct {
	Status string `form:"status" validate:"omitempty,enquirystatus"`
	Sort   string `form:"sort"`
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Limit  int    `form:"limit" validate:"omitempty,min=1"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// EnquiryResponse is a stored enquiry as returned to administrators.
type EnquiryResponse struct {
	ID                  uuid.UUID           `json:"id"`
	ReferenceNumber     string              `json:"referenceNumber"`
	BasicInfo           BasicInfo           `json:"basicInfo"`
	ContactInfo         ContactInfo         `json:"contactInfo"`
	ServiceRequirements ServiceRequirements `json:"serviceRequirements"`
	AdditionalInfo      AdditionalInfo      `json:"additionalInfo"`
	Metadata            Metadata            `json:"metadata"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// EmailsSent reports per-channel notification outcome.
type EmailsSent struct {
	Client bool `json:"client"`
	Admin  bool `json:"admin"`
}

// SubmitResponse is returned with 201 on a stored submission.
type SubmitResponse struct {
	Success         bool       `json:"success"`
	ReferenceNumber string     `json:"referenceNumber"`
	Message         string     `json:"message"`
	EmailsSent      EmailsSent `json:"emailsSent"`
}

// Pagination describes one page of a listing. Pages is ceil(Total/Limit).
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

// ListEnquiriesResponse is the admin listing envelope.
type ListEnquiriesResponse struct {
	Success    bool              `json:"success"`
	Data       []EnquiryResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
