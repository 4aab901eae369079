package email

const (
	subjectEnquiryConfirmation  = "Thank you for your enquiry - SABI"
	subjectEnquiryAdminAlertFmt = "New Enquiry Received - %s"
)
