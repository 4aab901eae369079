package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateReference means the reference number is already taken.
// Callers regenerate and retry.
var ErrDuplicateReference = errors.New("duplicate enquiry reference number")

// Enquiry is one stored submission.
type Enquiry struct {
	ID              uuid.UUID
	ReferenceNumber string

	FullName         string
	JobTitle         string
	Organization     string
	Industry         string
	OrganizationSize string
	OrganizationType string

	Email    string
	Phone    string
	Province string
	City     string
	Address  string

	Services            []string
	OtherServiceDetails string
	ProjectDetails      string
	BudgetRange         string
	Timeline            string

	CurrentChallenges string
	ExpectedOutcomes  string
	ReferralSource    string
	ExistingSystems   string
	MarketingConsent  bool

	SubmissionDate time.Time
	UserAgent      string
	IPAddress      string
	Status         string
	UpdatedAt      time.Time
}

// ListParams filters and pages a listing.
type ListParams struct {
	Status    *string
	SortBy    string // submissionDate | referenceNumber | status | organization
	SortOrder string // asc | desc
	Limit     int
	Offset    int
}

// Repository persists enquiries.
type Repository interface {
	Create(ctx context.Context, e Enquiry) (Enquiry, error)
	GetByID(ctx context.Context, id uuid.UUID) (Enquiry, error)
	GetByReference(ctx context.Context, reference string) (Enquiry, error)
	List(ctx context.Context, params ListParams) ([]Enquiry, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Enquiry, error)
}
