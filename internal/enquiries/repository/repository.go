// Package repository stores enquiries in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"enquiry_backend/internal/enquiries/domain"
	"enquiry_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	enquiryNotFoundMsg = "Enquiry not found"

	referenceConstraint = "enquiries_reference_number_key"

	opCreate         = "enquiries.create"
	opGetByID        = "enquiries.get_by_id"
	opGetByReference = "enquiries.get_by_reference"
	opList           = "enquiries.list"
	opUpdateStatus   = "enquiries.update_status"

	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

const enquiryColumns = `
	id, reference_number,
	full_name, job_title, organization, industry, organization_size, organization_type,
	email, phone, province, city, address,
	services, other_service_details, project_details, budget_range, timeline,
	current_challenges, expected_outcomes, referral_source, existing_systems, marketing_consent,
	submission_date, user_agent, ip_address, status, updated_at`

// Repo is the pgx implementation of Repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new enquiries repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanEnquiry(row pgx.Row) (Enquiry, error) {
	var e Enquiry
	err := row.Scan(
		&e.ID, &e.ReferenceNumber,
		&e.FullName, &e.JobTitle, &e.Organization, &e.Industry, &e.OrganizationSize, &e.OrganizationType,
		&e.Email, &e.Phone, &e.Province, &e.City, &e.Address,
		&e.Services, &e.OtherServiceDetails, &e.ProjectDetails, &e.BudgetRange, &e.Timeline,
		&e.CurrentChallenges, &e.ExpectedOutcomes, &e.ReferralSource, &e.ExistingSystems, &e.MarketingConsent,
		&e.SubmissionDate, &e.UserAgent, &e.IPAddress, &e.Status, &e.UpdatedAt,
	)
	return e, err
}

// Create inserts e. ID, SubmissionDate and Status default when zero.
func (r *Repo) Create(ctx context.Context, e Enquiry) (Enquiry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.SubmissionDate.IsZero() {
		e.SubmissionDate = time.Now().UTC()
	}
	if e.Status == "" {
		e.Status = string(domain.StatusNew)
	}

	query := `
		INSERT INTO enquiries (
			id, reference_number,
			full_name, job_title, organization, industry, organization_size, organization_type,
			email, phone, province, city, address,
			services, other_service_details, project_details, budget_range, timeline,
			current_challenges, expected_outcomes, referral_source, existing_systems, marketing_consent,
			submission_date, user_agent, ip_address, status, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $24
		)
		RETURNING ` + enquiryColumns

	created, err := scanEnquiry(r.pool.QueryRow(ctx, query,
		e.ID, e.ReferenceNumber,
		e.FullName, e.JobTitle, e.Organization, e.Industry, e.OrganizationSize, e.OrganizationType,
		e.Email, e.Phone, e.Province, e.City, e.Address,
		e.Services, e.OtherServiceDetails, e.ProjectDetails, e.BudgetRange, e.Timeline,
		e.CurrentChallenges, e.ExpectedOutcomes, e.ReferralSource, e.ExistingSystems, e.MarketingConsent,
		e.SubmissionDate, e.UserAgent, e.IPAddress, e.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				if pgErr.ConstraintName == referenceConstraint {
					return Enquiry{}, ErrDuplicateReference
				}
				return Enquiry{}, apperr.Conflict("enquiry already exists").WithOp(opCreate)
			case pgNotNullViolation, pgCheckViolation:
				return Enquiry{}, apperr.Wrap(apperr.KindValidation, "enquiry is missing required fields", err).WithOp(opCreate)
			}
		}
		return Enquiry{}, fmt.Errorf("failed to insert enquiry: %w", err)
	}
	return created, nil
}

// GetByID retrieves one enquiry by identity.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Enquiry, error) {
	e, err := scanEnquiry(r.pool.QueryRow(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Enquiry{}, apperr.NotFound(enquiryNotFoundMsg).WithOp(opGetByID)
		}
		return Enquiry{}, fmt.Errorf("failed to get enquiry: %w", err)
	}
	return e, nil
}

// GetByReference retrieves one enquiry by its reference number.
func (r *Repo) GetByReference(ctx context.Context, reference string) (Enquiry, error) {
	e, err := scanEnquiry(r.pool.QueryRow(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE reference_number = $1`, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Enquiry{}, apperr.NotFound(enquiryNotFoundMsg).WithOp(opGetByReference)
		}
		return Enquiry{}, fmt.Errorf("failed to get enquiry by reference: %w", err)
	}
	return e, nil
}

// List retrieves enquiries with filtering and pagination, plus the filtered total.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Enquiry, int, error) {
	sortBy, err := resolveSortBy(params.SortBy)
	if err != nil {
		return nil, 0, err
	}
	sortOrder, err := resolveSortOrder(params.SortOrder)
	if err != nil {
		return nil, 0, err
	}
	if params.Limit <= 0 {
		return nil, 0, apperr.BadRequest("limit must be positive").WithOp(opList)
	}

	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	baseQuery := `
		FROM enquiries
		WHERE ($1::text IS NULL OR status = $1)
	`

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, statusParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count enquiries: %w", err)
	}

	selectQuery := `SELECT ` + enquiryColumns + baseQuery + `
		ORDER BY
			CASE WHEN $2 = 'submissionDate' AND $3 = 'asc' THEN submission_date END ASC,
			CASE WHEN $2 = 'submissionDate' AND $3 = 'desc' THEN submission_date END DESC,
			CASE WHEN $2 = 'referenceNumber' AND $3 = 'asc' THEN reference_number END ASC,
			CASE WHEN $2 = 'referenceNumber' AND $3 = 'desc' THEN reference_number END DESC,
			CASE WHEN $2 = 'status' AND $3 = 'asc' THEN status END ASC,
			CASE WHEN $2 = 'status' AND $3 = 'desc' THEN status END DESC,
			CASE WHEN $2 = 'organization' AND $3 = 'asc' THEN organization END ASC,
			CASE WHEN $2 = 'organization' AND $3 = 'desc' THEN organization END DESC,
			submission_date DESC, id
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, selectQuery, statusParam, sortBy, sortOrder, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	items := make([]Enquiry, 0)
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate enquiries: %w", err)
	}

	return items, total, nil
}

// UpdateStatus changes only the status column and returns the updated row.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Enquiry, error) {
	if _, err := domain.ParseStatus(status); err != nil {
		return Enquiry{}, apperr.Validation("status must be one of: " + domain.StatusList()).WithOp(opUpdateStatus)
	}

	query := `UPDATE enquiries SET status = $2, updated_at = $3 WHERE id = $1 RETURNING ` + enquiryColumns
	e, err := scanEnquiry(r.pool.QueryRow(ctx, query, id, status, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Enquiry{}, apperr.NotFound(enquiryNotFoundMsg).WithOp(opUpdateStatus)
		}
		return Enquiry{}, fmt.Errorf("failed to update enquiry status: %w", err)
	}
	return e, nil
}

func resolveSortBy(value string) (string, error) {
	switch value {
	case "", "submissionDate":
		return "submissionDate", nil
	case "referenceNumber", "status", "organization":
		return value, nil
	default:
		return "", apperr.BadRequest("invalid sort field").WithOp(opList)
	}
}

func resolveSortOrder(value string) (string, error) {
	switch value {
	case "", "desc":
		return "desc", nil
	case "asc":
		return "asc", nil
	default:
		return "", apperr.BadRequest("invalid sort order").WithOp(opList)
	}
}
