package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
		{KindUnknown, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := New(tc.kind, "x").HTTPStatus(); got != tc.want {
			t.Fatalf("kind %d: expected %d, got %d", tc.kind, tc.want, got)
		}
	}
}

func TestGetKindThroughWrapping(t *testing.T) {
	base := NotFound("enquiry not found")
	wrapped := fmt.Errorf("get enquiry: %w", base)

	if !Is(wrapped, KindNotFound) {
		t.Fatalf("expected wrapped error to keep KindNotFound")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatalf("expected KindUnknown for untyped error")
	}
}

func TestErrorMessageIncludesOpAndCause(t *testing.T) {
	err := Wrap(KindInternal, "create enquiry failed", errors.New("connection reset")).WithOp("enquiries.Create")

	want := "enquiries.Create: create enquiry failed: connection reset"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestWithFields(t *testing.T) {
	err := Validation("validation failed").WithFields([]FieldError{{Field: "contactInfo.phone", Message: "invalid"}})
	if len(err.Fields) != 1 || err.Fields[0].Field != "contactInfo.phone" {
		t.Fatalf("unexpected fields: %#v", err.Fields)
	}
}
