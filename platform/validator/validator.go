// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"enquiry_backend/platform/apperr"

	"github.com/go-playground/validator/v10"
)

var tenDigitsRegex = regexp.MustCompile(`^[0-9]{10}$`)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v        *validator.Validate
	mu       sync.RWMutex
	messages map[string]string
}

// New creates a new Validator instance with the generic rules registered.
// Domain-specific validation rules can be registered using RegisterValidation.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so error paths match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	val := &Validator{
		v: v,
		messages: map[string]string{
			"required":  "is required",
			"notblank":  "must not be empty",
			"email":     "must be a valid email address",
			"phone10":   "must be a valid 10-digit phone number",
			"min.items": "must contain at least %s item(s)",
			"max.items": "must contain at most %s item(s)",
			"min.chars": "must be at least %s characters long",
			"max.chars": "must be at most %s characters long",
			"min":       "must be at least %s",
			"max":       "must be at most %s",
			"oneof":     "must be one of: %s",
		},
	}

	_ = val.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = val.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return tenDigitsRegex.MatchString(fl.Field().String())
	})

	return val
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// RegisterMessage sets the human message reported for a failing tag.
// A single %s verb, if present, receives the tag parameter.
func (val *Validator) RegisterMessage(tag, message string) {
	val.mu.Lock()
	defer val.mu.Unlock()
	val.messages[tag] = message
}

// Fields validates s and returns every failing field. A nil slice means s is valid.
// Errors that are not field failures (e.g. a nil struct) are returned as err.
func (val *Validator) Fields(s interface{}) ([]apperr.FieldError, error) {
	err := val.v.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: val.message(fe),
		})
	}
	return fields, nil
}

func (val *Validator) message(fe validator.FieldError) string {
	val.mu.RLock()
	msg, ok := val.messages[messageKey(fe)]
	if !ok {
		msg, ok = val.messages[fe.Tag()]
	}
	val.mu.RUnlock()
	if !ok {
		return "is invalid"
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}

// messageKey qualifies length tags by what is being measured.
func messageKey(fe validator.FieldError) string {
	tag := fe.Tag()
	if tag != "min" && tag != "max" {
		return tag
	}
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return tag + ".items"
	case reflect.String:
		return tag + ".chars"
	default:
		return tag
	}
}

// fieldPath drops the root struct name from a validator namespace,
// turning "CreateEnquiryRequest.contactInfo.phone" into "contactInfo.phone".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
