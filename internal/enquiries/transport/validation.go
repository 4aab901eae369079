package transport

import (
	"enquiry_backend/internal/enquiries/domain"
	"enquiry_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// RegisterValidations adds the enquiry-specific tags to val.
func RegisterValidations(val *validator.Validator) error {
	if err := val.RegisterValidation("enquirystatus", func(fl playground.FieldLevel) bool {
		return domain.Status(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	val.RegisterMessage("enquirystatus", "must be one of: "+domain.StatusList())
	return nil
}
