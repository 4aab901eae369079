package transport

import (
	"testing"

	"enquiry_backend/platform/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validator {
	t.Helper()
	val := validator.New()
	require.NoError(t, RegisterValidations(val))
	return val
}

func validRequest() CreateEnquiryRequest {
	return CreateEnquiryRequest{
		BasicInfo: BasicInfo{
			FullName:         "Thandi Nkosi",
			Organization:     "Acme",
			Industry:         "Retail",
			OrganizationSize: "11-50",
			OrganizationType: "Private",
		},
		ContactInfo: ContactInfo{
			Email:    "thandi@example.co.za",
			Phone:    "0821234567",
			Province: "Gauteng",
			City:     "Johannesburg",
		},
		ServiceRequirements: ServiceRequirements{
			Services:       []string{"web-development"},
			ProjectDetails: "Rebuild our storefront.",
		},
	}
}

func fieldMap(t *testing.T, val *validator.Validator, v any) map[string]string {
	t.Helper()
	fields, err := val.Fields(v)
	require.NoError(t, err)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestCreateEnquiryRequestValid(t *testing.T) {
	assert.Empty(t, fieldMap(t, newValidator(t), validRequest()))
}

func TestCreateEnquiryRequestEmptyReportsEveryRequiredField(t *testing.T) {
	fields := fieldMap(t, newValidator(t), CreateEnquiryRequest{})

	for _, path := range []string{
		"basicInfo.fullName",
		"basicInfo.organization",
		"basicInfo.industry",
		"basicInfo.organizationSize",
		"basicInfo.organizationType",
		"contactInfo.email",
		"contactInfo.phone",
		"contactInfo.province",
		"contactInfo.city",
		"serviceRequirements.services",
		"serviceRequirements.projectDetails",
	} {
		assert.Contains(t, fields, path)
	}
	assert.NotContains(t, fields, "basicInfo.jobTitle")
	assert.NotContains(t, fields, "contactInfo.address")
}

func TestCreateEnquiryRequestPhone(t *testing.T) {
	val := newValidator(t)
	for phone, ok := range map[string]bool{
		"0821234567":  true,
		"123456789":   false,
		"12345678901": false,
	} {
		req := validRequest()
		req.ContactInfo.Phone = phone
		_, failed := fieldMap(t, val, req)["contactInfo.phone"]
		assert.Equalf(t, !ok, failed, "phone %q", phone)
	}
}

func TestCreateEnquiryRequestServices(t *testing.T) {
	val := newValidator(t)

	req := validRequest()
	req.ServiceRequirements.Services = []string{}
	assert.Equal(t, "must contain at least 1 item(s)", fieldMap(t, val, req)["serviceRequirements.services"])

	req.ServiceRequirements.Services = nil
	assert.Contains(t, fieldMap(t, val, req), "serviceRequirements.services")

	req.ServiceRequirements.Services = []string{"web-development", "  "}
	assert.Contains(t, fieldMap(t, val, req), "serviceRequirements.services[1]")
}

func TestCreateEnquiryRequestBlankName(t *testing.T) {
	req := validRequest()
	req.BasicInfo.FullName = "   "
	assert.Equal(t, "must not be empty", fieldMap(t, newValidator(t), req)["basicInfo.fullName"])
}

func TestUpdateStatusRequest(t *testing.T) {
	val := newValidator(t)

	assert.Empty(t, fieldMap(t, val, UpdateStatusRequest{Status: "completed"}))
	assert.Equal(t,
		"must be one of: new, in-progress, completed, archived",
		fieldMap(t, val, UpdateStatusRequest{Status: "bogus"})["status"],
	)
	assert.Equal(t, "is required", fieldMap(t, val, UpdateStatusRequest{})["status"])
}

func TestListEnquiriesRequest(t *testing.T) {
	val := newValidator(t)

	assert.Empty(t, fieldMap(t, val, ListEnquiriesRequest{}))
	assert.Contains(t, fieldMap(t, val, ListEnquiriesRequest{Status: "bogus"}), "status")
	assert.Contains(t, fieldMap(t, val, ListEnquiriesRequest{Page: -1}), "page")
}
