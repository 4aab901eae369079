package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"enquiry_backend/platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, debug bool, err error) (int, ErrorResponse) {
	t.Helper()

	r := gin.New()
	h := NewErrorHandler(debug)
	r.GET("/", func(c *gin.Context) { h.Handle(c, err) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleValidationCarriesFieldErrors(t *testing.T) {
	err := apperr.Validation("invalid enquiry").WithFields([]apperr.FieldError{
		{Field: "contactInfo.phone", Message: "must be a valid 10-digit phone number"},
	})

	status, body := serveError(t, false, err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "contactInfo.phone", body.Errors[0].Field)
}

func TestHandleNotFound(t *testing.T) {
	status, body := serveError(t, false, apperr.NotFound("enquiry not found"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "enquiry not found", body.Message)
}

func TestHandleInternalHidesDetailOutsideDebug(t *testing.T) {
	cause := errors.New("connection refused")

	status, body := serveError(t, false, apperr.Wrap(apperr.KindInternal, "Error fetching enquiries", cause))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Error fetching enquiries", body.Message)
	assert.Empty(t, body.Error)

	status, body = serveError(t, false, cause)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Empty(t, body.Error)

	status, body = serveError(t, true, cause)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "connection refused", body.Error)
}
