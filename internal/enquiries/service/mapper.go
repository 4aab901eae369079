package service

import (
	"time"

	"enquiry_backend/internal/enquiries/domain"
	"enquiry_backend/internal/enquiries/repository"
	"enquiry_backend/internal/enquiries/transport"
	"enquiry_backend/platform/sanitize"

	"github.com/google/uuid"
)

// trimRequest strips surrounding whitespace before validation so padded
// input is judged on its content.
func trimRequest(req transport.CreateEnquiryRequest) transport.CreateEnquiryRequest {
	b := &req.BasicInfo
	b.FullName = sanitize.Text(b.FullName)
	b.JobTitle = sanitize.Text(b.JobTitle)
	b.Organization = sanitize.Text(b.Organization)
	b.Industry = sanitize.Text(b.Industry)
	b.OrganizationSize = sanitize.Text(b.OrganizationSize)
	b.OrganizationType = sanitize.Text(b.OrganizationType)

	c := &req.ContactInfo
	c.Email = sanitize.Text(c.Email)
	c.Phone = sanitize.Text(c.Phone)
	c.Province = sanitize.Text(c.Province)
	c.City = sanitize.Text(c.City)
	c.Address = sanitize.Text(c.Address)

	r := &req.ServiceRequirements
	if r.Services != nil {
		services := make([]string, len(r.Services))
		for i, svc := range r.Services {
			services[i] = sanitize.Text(svc)
		}
		r.Services = services
	}
	r.OtherServiceDetails = sanitize.Text(r.OtherServiceDetails)
	r.ProjectDetails = sanitize.Text(r.ProjectDetails)
	r.BudgetRange = sanitize.Text(r.BudgetRange)
	r.Timeline = sanitize.Text(r.Timeline)

	a := &req.AdditionalInfo
	a.CurrentChallenges = sanitize.Text(a.CurrentChallenges)
	a.ExpectedOutcomes = sanitize.Text(a.ExpectedOutcomes)
	a.ReferralSource = sanitize.Text(a.ReferralSource)
	a.ExistingSystems = sanitize.Text(a.ExistingSystems)

	return req
}

// newRecord builds the row to insert. Name, organization and project details
// are stored escaped; the email address is stored lower-cased.
func newRecord(req transport.CreateEnquiryRequest, meta RequestMeta, now time.Time) repository.Enquiry {
	return repository.Enquiry{
		ID: uuid.New(),

		FullName:         sanitize.Escape(req.BasicInfo.FullName),
		JobTitle:         req.BasicInfo.JobTitle,
		Organization:     sanitize.Escape(req.BasicInfo.Organization),
		Industry:         req.BasicInfo.Industry,
		OrganizationSize: req.BasicInfo.OrganizationSize,
		OrganizationType: req.BasicInfo.OrganizationType,

		Email:    sanitize.Email(req.ContactInfo.Email),
		Phone:    req.ContactInfo.Phone,
		Province: req.ContactInfo.Province,
		City:     req.ContactInfo.City,
		Address:  req.ContactInfo.Address,

		Services:            req.ServiceRequirements.Services,
		OtherServiceDetails: req.ServiceRequirements.OtherServiceDetails,
		ProjectDetails:      sanitize.Escape(req.ServiceRequirements.ProjectDetails),
		BudgetRange:         req.ServiceRequirements.BudgetRange,
		Timeline:            req.ServiceRequirements.Timeline,

		CurrentChallenges: req.AdditionalInfo.CurrentChallenges,
		ExpectedOutcomes:  req.AdditionalInfo.ExpectedOutcomes,
		ReferralSource:    req.AdditionalInfo.ReferralSource,
		ExistingSystems:   req.AdditionalInfo.ExistingSystems,
		MarketingConsent:  req.AdditionalInfo.MarketingConsent,

		SubmissionDate: now,
		UserAgent:      meta.UserAgent,
		IPAddress:      meta.IPAddress,
		Status:         domain.StatusNew.String(),
	}
}

func toResponse(e repository.Enquiry) transport.EnquiryResponse {
	services := e.Services
	if services == nil {
		services = []string{}
	}
	return transport.EnquiryResponse{
		ID:              e.ID,
		ReferenceNumber: e.ReferenceNumber,
		BasicInfo: transport.BasicInfo{
			FullName:         e.FullName,
			JobTitle:         e.JobTitle,
			Organization:     e.Organization,
			Industry:         e.Industry,
			OrganizationSize: e.OrganizationSize,
			OrganizationType: e.OrganizationType,
		},
		ContactInfo: transport.ContactInfo{
			Email:    e.Email,
			Phone:    e.Phone,
			Province: e.Province,
			City:     e.City,
			Address:  e.Address,
		},
		ServiceRequirements: transport.ServiceRequirements{
			Services:            services,
			OtherServiceDetails: e.OtherServiceDetails,
			ProjectDetails:      e.ProjectDetails,
			BudgetRange:         e.BudgetRange,
			Timeline:            e.Timeline,
		},
		AdditionalInfo: transport.AdditionalInfo{
			CurrentChallenges: e.CurrentChallenges,
			ExpectedOutcomes:  e.ExpectedOutcomes,
			ReferralSource:    e.ReferralSource,
			ExistingSystems:   e.ExistingSystems,
			MarketingConsent:  e.MarketingConsent,
		},
		Metadata: transport.Metadata{
			SubmissionDate: e.SubmissionDate,
			UserAgent:      e.UserAgent,
			IPAddress:      e.IPAddress,
			Status:         e.Status,
		},
		UpdatedAt: e.UpdatedAt,
	}
}
