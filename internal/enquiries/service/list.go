package service

import (
	"context"
	"math"
	"strings"

	"enquiry_backend/internal/enquiries/repository"
	"enquiry_backend/internal/enquiries/transport"
	"enquiry_backend/platform/apperr"
)

const (
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 200
	defaultSort  = "-metadata.submissionDate"
)

// sortFields maps accepted sort keys to repository columns.
var sortFields = map[string]string{
	"metadata.submissionDate": "submissionDate",
	"submissionDate":          "submissionDate",
	"referenceNumber":         "referenceNumber",
	"metadata.status":         "status",
	"status":                  "status",
	"basicInfo.organization":  "organization",
	"organization":            "organization",
}

// List returns one page of enquiries, newest first unless sort says otherwise.
func (s *Service) List(ctx context.Context, req transport.ListEnquiriesRequest) (transport.ListEnquiriesResponse, error) {
	if err := s.validate(req, opList); err != nil {
		return transport.ListEnquiriesResponse{}, err
	}

	sortBy, sortOrder, err := parseSort(req.Sort)
	if err != nil {
		return transport.ListEnquiriesResponse{}, err
	}

	page := req.Page
	if page < 1 {
		page = defaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// Keeps (page-1)*limit within int.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	params := repository.ListParams{
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if req.Status != "" {
		status := req.Status
		params.Status = &status
	}

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.ListEnquiriesResponse{}, s.wrapAdminError(ctx, err, "Error fetching enquiries", opList)
	}

	data := make([]transport.EnquiryResponse, len(items))
	for i, e := range items {
		data[i] = toResponse(e)
	}

	return transport.ListEnquiriesResponse{
		Success: true,
		Data:    data,
		Pagination: transport.Pagination{
			Total: total,
			Page:  page,
			Pages: pageCount(total, limit),
			Limit: limit,
		},
	}, nil
}

// parseSort reads "field" or "-field" into a column and direction.
func parseSort(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultSort
	}

	order := "asc"
	switch {
	case strings.HasPrefix(raw, "-"):
		order = "desc"
		raw = raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}

	column, ok := sortFields[raw]
	if !ok {
		return "", "", apperr.Validation(msgValidationFailed).WithOp(opList).WithFields([]apperr.FieldError{{
			Field:   "sort",
			Message: "must be one of: metadata.submissionDate, referenceNumber, metadata.status, basicInfo.organization",
		}})
	}
	return column, order, nil
}

func pageCount(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
