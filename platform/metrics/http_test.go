package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/enquiries/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/enquiries/:id", "200"))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/enquiries/"+id, nil))
	}

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/enquiries/:id", "200"))
	if after-before != 2 {
		t.Fatalf("expected 2 requests under one label, got %v", after-before)
	}
}

func TestMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope/123", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))

	if after-before != 1 {
		t.Fatalf("expected unmatched route to be counted once, got %v", after-before)
	}
}

func TestRecordEmail(t *testing.T) {
	before := testutil.ToFloat64(EmailsTotal.WithLabelValues("enquiry_confirmation", "failed"))
	RecordEmail("enquiry_confirmation", false)
	after := testutil.ToFloat64(EmailsTotal.WithLabelValues("enquiry_confirmation", "failed"))
	if after-before != 1 {
		t.Fatalf("expected failed counter to increase by 1")
	}
}
