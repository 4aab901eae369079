// Package handler exposes the enquiry workflow over HTTP.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"enquiry_backend/internal/enquiries/service"
	"enquiry_backend/internal/enquiries/transport"
	"enquiry_backend/platform/apperr"
	"enquiry_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidQuery   = "invalid query parameters"
	msgBodyTooLarge   = "Request body too large"

	msgValidationFailed = "validation failed"
	msgWrongType        = "has the wrong type"
	msgUnknownField     = "is not allowed"
)

// EnquiryService is the subset of the service the handler drives.
type EnquiryService interface {
	Submit(ctx context.Context, req transport.CreateEnquiryRequest, meta service.RequestMeta) (transport.SubmitResponse, error)
	List(ctx context.Context, req transport.ListEnquiriesRequest) (transport.ListEnquiriesResponse, error)
	Get(ctx context.Context, idOrReference string) (transport.EnquiryResponse, error)
	UpdateStatus(ctx context.Context, id string, req transport.UpdateStatusRequest) (transport.EnquiryResponse, error)
}

// Handler handles HTTP requests for enquiries
type Handler struct {
	svc    EnquiryService
	errors *httpkit.ErrorHandler
}

// New creates a new enquiries handler
func New(svc EnquiryService, errs *httpkit.ErrorHandler) *Handler {
	return &Handler{svc: svc, errors: errs}
}

// RegisterPublicRoutes mounts the unauthenticated submission endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Submit)
}

// RegisterAdminRoutes mounts the triage endpoints. rg must already carry the admin guard.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
}

func (h *Handler) Submit(c *gin.Context) {
	var req transport.CreateEnquiryRequest
	if err := decodeStrict(c, &req); err != nil {
		h.rejectBody(c, err)
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), req, service.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if h.errors.Handle(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListEnquiriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuery)
		return
	}

	resp, err := h.svc.List(c.Request.Context(), req)
	if h.errors.Handle(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if h.errors.Handle(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req transport.UpdateStatusRequest
	if err := decodeStrict(c, &req); err != nil {
		h.rejectBody(c, err)
		return
	}

	resp, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if h.errors.Handle(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// rejectBody answers a body that could not be decoded. Mistyped and unknown
// fields are reported per field like validation failures.
func (h *Handler) rejectBody(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httpkit.Error(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	if field, ok := decodeFieldError(err); ok {
		h.errors.Handle(c, apperr.Validation(msgValidationFailed).WithFields([]apperr.FieldError{field}))
		return
	}
	httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
}

// decodeFieldError names the offending field of a decode error, if there is one.
func decodeFieldError(err error) (apperr.FieldError, bool) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.FieldError{Field: typeErr.Field, Message: msgWrongType}, true
	}
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		if unquoted, uerr := strconv.Unquote(name); uerr == nil {
			name = unquoted
		}
		return apperr.FieldError{Field: name, Message: msgUnknownField}, true
	}
	return apperr.FieldError{}, false
}

// decodeStrict decodes a single JSON object and rejects unknown fields,
// so clients cannot supply server-assigned metadata.
func decodeStrict(c *gin.Context, dst any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}
