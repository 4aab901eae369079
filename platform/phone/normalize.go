// Package phone formats the South African numbers captured by the enquiry form.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Region is the default region for numbers written without a country code.
const Region = "ZA"

// Display returns "+27 82 123 4567" for a valid number, otherwise the trimmed input.
func Display(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, Region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
}
