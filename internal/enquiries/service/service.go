// Package service implements the enquiry intake workflow and admin triage.
package service

import (
	"context"
	"errors"
	"time"

	"enquiry_backend/internal/enquiries/domain"
	"enquiry_backend/internal/enquiries/notifier"
	"enquiry_backend/internal/enquiries/repository"
	"enquiry_backend/internal/enquiries/transport"
	"enquiry_backend/platform/apperr"
	"enquiry_backend/platform/logger"
	"enquiry_backend/platform/metrics"
	"enquiry_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	maxReferenceAttempts = 5

	msgSubmitted        = "Enquiry submitted successfully"
	msgSubmitFailed     = "An error occurred while processing your enquiry"
	msgValidationFailed = "validation failed"
	msgNotFound         = "Enquiry not found"

	opSubmit       = "enquiries.submit"
	opList         = "enquiries.list"
	opGet          = "enquiries.get"
	opUpdateStatus = "enquiries.update_status"
)

// Notifier is the narrow interface the service needs to announce a new enquiry.
type Notifier interface {
	NotifyCreated(ctx context.Context, e repository.Enquiry) notifier.Delivery
}

// RequestMeta is what the transport knows about the caller.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Service provides business logic for enquiries
type Service struct {
	repo         repository.Repository
	notifier     Notifier
	val          *validator.Validator
	log          *logger.Logger
	now          func() time.Time
	newReference func(time.Time) string
}

// New creates a new enquiries service
func New(repo repository.Repository, n Notifier, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		notifier:     n,
		val:          val,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
		newReference: domain.GenerateReference,
	}
}

// Submit validates, stores and announces a new enquiry.
func (s *Service) Submit(ctx context.Context, req transport.CreateEnquiryRequest, meta RequestMeta) (transport.SubmitResponse, error) {
	req = trimRequest(req)
	if err := s.validate(req, opSubmit); err != nil {
		return transport.SubmitResponse{}, err
	}

	record := newRecord(req, meta, s.now())

	created, err := s.create(ctx, record)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	metrics.EnquiriesCreated.Inc()
	s.log.WithContext(ctx).Info("enquiry_created",
		"reference", created.ReferenceNumber,
		"enquiry_id", created.ID.String(),
	)

	delivery := s.notifier.NotifyCreated(ctx, created)

	return transport.SubmitResponse{
		Success:         true,
		ReferenceNumber: created.ReferenceNumber,
		Message:         msgSubmitted,
		EmailsSent: transport.EmailsSent{
			Client: delivery.Client,
			Admin:  delivery.Admin,
		},
	}, nil
}

// create assigns a reference and inserts, regenerating on collision.
func (s *Service) create(ctx context.Context, record repository.Enquiry) (repository.Enquiry, error) {
	var lastErr error
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		record.ReferenceNumber = s.newReference(record.SubmissionDate)

		created, err := s.repo.Create(ctx, record)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, repository.ErrDuplicateReference) {
			if apperr.GetKind(err) == apperr.KindValidation {
				return repository.Enquiry{}, err
			}
			s.log.WithContext(ctx).DatabaseError(opSubmit, err)
			return repository.Enquiry{}, apperr.Wrap(apperr.KindInternal, msgSubmitFailed, err).WithOp(opSubmit)
		}

		lastErr = err
		metrics.ReferenceCollisions.Inc()
		s.log.WithContext(ctx).Warn("reference_collision",
			"reference", record.ReferenceNumber,
			"attempt", attempt,
		)
	}
	return repository.Enquiry{}, apperr.Wrap(apperr.KindInternal, msgSubmitFailed, lastErr).WithOp(opSubmit)
}

// Get fetches one enquiry by UUID or by reference number.
func (s *Service) Get(ctx context.Context, idOrReference string) (transport.EnquiryResponse, error) {
	var (
		e   repository.Enquiry
		err error
	)
	if domain.IsReference(idOrReference) {
		e, err = s.repo.GetByReference(ctx, idOrReference)
	} else {
		id, parseErr := uuid.Parse(idOrReference)
		if parseErr != nil {
			return transport.EnquiryResponse{}, apperr.NotFound(msgNotFound).WithOp(opGet)
		}
		e, err = s.repo.GetByID(ctx, id)
	}
	if err != nil {
		return transport.EnquiryResponse{}, s.wrapAdminError(ctx, err, "Error fetching enquiry", opGet)
	}
	return toResponse(e), nil
}

// UpdateStatus moves an enquiry to a new lifecycle status. Nothing else changes.
func (s *Service) UpdateStatus(ctx context.Context, rawID string, req transport.UpdateStatusRequest) (transport.EnquiryResponse, error) {
	if err := s.validate(req, opUpdateStatus); err != nil {
		return transport.EnquiryResponse{}, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return transport.EnquiryResponse{}, apperr.NotFound(msgNotFound).WithOp(opUpdateStatus)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return transport.EnquiryResponse{}, s.wrapAdminError(ctx, err, "Error updating enquiry status", opUpdateStatus)
	}

	metrics.StatusUpdates.WithLabelValues(req.Status).Inc()
	s.log.WithContext(ctx).Info("enquiry_status_updated",
		"reference", updated.ReferenceNumber,
		"status", updated.Status,
	)
	return toResponse(updated), nil
}

func (s *Service) validate(v any, op string) error {
	fields, err := s.val.Fields(v)
	if err != nil {
		return apperr.Wrap(apperr.KindBadRequest, "invalid request", err).WithOp(op)
	}
	if len(fields) > 0 {
		return apperr.Validation(msgValidationFailed).WithOp(op).WithFields(fields)
	}
	return nil
}

// wrapAdminError keeps client-facing kinds and hides everything else behind message.
func (s *Service) wrapAdminError(ctx context.Context, err error, message, op string) error {
	if domainErr, ok := apperr.As(err); ok && domainErr.Kind != apperr.KindInternal && domainErr.Kind != apperr.KindUnknown {
		return err
	}
	s.log.WithContext(ctx).DatabaseError(op, err)
	return apperr.Wrap(apperr.KindInternal, message, err).WithOp(op)
}
