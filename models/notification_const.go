package models

type NotificationCode string

const (
	NotifyFormShared       NotificationCode = "form_shared"
	NotifyFormDelegated    NotificationCode = "form_delegated"
	NotifyFormMarkedBack   NotificationCode = "form_marked_back"
	NotifyFormApproved     NotificationCode = "form_approved"
	NotifyFormFinalized    NotificationCode = "form_finalized"
	NotifyFormSubmitted    NotificationCode = "form_submitted"
	NotifyReferenceMoved   NotificationCode = "reference_moved"
	NotifyReferenceClosed  NotificationCode = "reference_closed"
	NotifyReferenceOverdue NotificationCode = "reference_overdue"
)
