package exporthandler

import (
	"bytes"

	log "github.com/sirupsen/logrus"
	"refdesk-backend/db"
	pdfexport "refdesk-backend/lib/export/pdf"
	xlsexport "refdesk-backend/lib/export/xls"
	templatestore "refdesk-backend/lib/form-template/store"
	referencestore "refdesk-backend/lib/reference/store"
	usersstore "refdesk-backend/lib/users/store"
	submissionstore "refdesk-backend/lib/workflow/submission-store"
	"refdesk-backend/models"
	referenceapimodels "refdesk-backend/models/api/reference"
)

type Provider interface {
	ReferencesXLSX(userID string, filter referenceapimodels.ReferenceFilter) (*bytes.Buffer, error)
	SubmissionsXLSX(userID string, role models.UserRole, templateID string) (*bytes.Buffer, error)
	SubmissionReceiptPDF(submissionID string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		references:  referencestore.NewInstance(db.DB),
		templates:   templatestore.NewInstance(db.DB),
		submissions: submissionstore.NewInstance(db.DB),
		users:       usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	references  referencestore.Provider
	templates   templatestore.Provider
	submissions submissionstore.Provider
	users       usersstore.Provider
}

func (i impl) ReferencesXLSX(userID string, filter referenceapimodels.ReferenceFilter) (*bytes.Buffer, error) {
	recList, err := i.references.ListAll(userID, filter)
	if err != nil {
		log.WithError(err).Error("failed to load references for export")
		return nil, err
	}
	return xlsexport.Instance.ExportReferenceList(recList)
}

func (i impl) SubmissionsXLSX(userID string, role models.UserRole, templateID string) (*bytes.Buffer, error) {
	template, err := i.templates.GetByID(templateID)
	if err != nil {
		log.WithError(err).Error("failed to load template for export")
		return nil, err
	}
	if template == nil {
		return nil, models.NewNotFoundError("template not found")
	}
	if template.CreatedBy != userID && !role.IsAdmin() {
		return nil, models.NewForbiddenError("only the template creator may export its submissions")
	}
	recList, err := i.submissions.ListByTemplate(templateID, 1, 10000)
	if err != nil {
		log.WithError(err).Error("failed to load submissions for export")
		return nil, err
	}
	return xlsexport.Instance.ExportSubmissionList(*template, recList)
}

func (i impl) SubmissionReceiptPDF(submissionID string) ([]byte, error) {
	submission, err := i.submissions.GetByID(submissionID)
	if err != nil {
		log.WithError(err).Error("failed to load submission for export")
		return nil, err
	}
	if submission == nil {
		return nil, models.NewNotFoundError("submission not found")
	}
	template, err := i.templates.GetByID(submission.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, models.NewNotFoundError("template not found")
	}
	submitterName := submission.SubmittedBy
	submitter, err := i.users.GetByID(submission.SubmittedBy)
	if err == nil && submitter != nil {
		submitterName = submitter.GetFullName()
	}
	return pdfexport.GenerateSubmissionReceipt(*template, *submission, submitterName)
}
