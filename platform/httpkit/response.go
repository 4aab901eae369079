// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"enquiry_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

const (
	msgInternal     = "Internal server error"
	msgUnauthorized = "Unauthorized"
	msgNotFound     = "Resource not found"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// DataResponse wraps a single payload in the success envelope.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Success: false, Message: message})
}

// OK sends a 200 OK response with payload under "data".
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, DataResponse{Success: true, Data: payload})
}

// NotFound sends the generic not-found body.
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, msgNotFound)
}

// Unauthorized aborts the request with the generic 401 body.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: msgUnauthorized})
}

// ErrorHandler maps errors to the response envelope. When debug is true,
// internal failures carry the underlying error text in "error".
type ErrorHandler struct {
	debug bool
}

// NewErrorHandler creates an ErrorHandler.
func NewErrorHandler(debug bool) *ErrorHandler {
	return &ErrorHandler{debug: debug}
}

// Handle writes err to c. Returns true if an error was handled, false otherwise.
func (h *ErrorHandler) Handle(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	_ = c.Error(err)

	domainErr, ok := apperr.As(err)
	if !ok {
		h.internal(c, msgInternal, err)
		return true
	}

	status := domainErr.HTTPStatus()
	switch {
	case status >= http.StatusInternalServerError:
		message := domainErr.Message
		if message == "" {
			message = msgInternal
		}
		h.internal(c, message, err)
	case domainErr.Kind == apperr.KindValidation && len(domainErr.Fields) > 0:
		c.JSON(status, ErrorResponse{Success: false, Errors: domainErr.Fields})
	case domainErr.Kind == apperr.KindUnauthorized:
		c.JSON(status, ErrorResponse{Success: false, Message: msgUnauthorized})
	default:
		c.JSON(status, ErrorResponse{Success: false, Message: domainErr.Message})
	}
	return true
}

// internal writes a 500. message must be safe for clients; err is only
// exposed in debug mode.
func (h *ErrorHandler) internal(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Success: false, Message: message}
	if h.debug {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
