package formapimodels

import (
	"time"

	"github.com/pkg/errors"
	"refdesk-backend/models"
	apimodels "refdesk-backend/models/api"
	dbmodels "refdesk-backend/models/db"
)

type DelegateData struct {
	TemplateID         string `json:"template_id"`
	AssignedToID       string `json:"assigned_to_id"`
	Remarks            string `json:"remarks,omitempty"`
	ParentAssignmentID string `json:"parent_assignment_id,omitempty"`
}

func (r DelegateData) Validate() error {
	if r.AssignedToID == "" {
		return errors.New("assigned_to_id is required")
	}
	if r.TemplateID == "" && r.ParentAssignmentID == "" {
		return errors.New("either template_id or parent_assignment_id is required")
	}
	return nil
}

type MarkBackData struct {
	AssignmentID string `json:"assignment_id"`
	Remarks      string `json:"remarks,omitempty"`
	ReturnToID   string `json:"return_to_id,omitempty"`
}

func (r MarkBackData) Validate() error {
	if r.AssignmentID == "" {
		return errors.New("assignment_id is required")
	}
	return nil
}

type ApproveData struct {
	AssignmentID string `json:"assignment_id"`
	Remarks      string `json:"remarks,omitempty"`
	Finalize     bool   `json:"finalize,omitempty"`
}

func (r ApproveData) Validate() error {
	if r.AssignmentID == "" {
		return errors.New("assignment_id is required")
	}
	return nil
}

type AssignmentActionData struct {
	AssignmentID string `json:"assignment_id"`
	Remarks      string `json:"remarks,omitempty"`
}

func (r AssignmentActionData) Validate() error {
	if r.AssignmentID == "" {
		return errors.New("assignment_id is required")
	}
	return nil
}

type DraftData struct {
	TemplateID   string                  `json:"template_id"`
	AssignmentID string                  `json:"assignment_id,omitempty"`
	Data         dbmodels.SubmissionData `json:"data"`
}

func (r DraftData) Validate() error {
	if r.TemplateID == "" && r.AssignmentID == "" {
		return errors.New("either template_id or assignment_id is required")
	}
	if len(r.Data) == 0 {
		return errors.New("data is required")
	}
	return nil
}

type InboxFilter struct {
	OnlyUnread bool `json:"only_unread,omitempty"`
	apimodels.Pagination
}

func (r InboxFilter) Validate() error {
	return nil
}

type AssignmentView struct {
	ID                 string                  `json:"id"`
	TemplateID         string                  `json:"template_id"`
	TemplateTitle      string                  `json:"template_title,omitempty"`
	AssignedTo         string                  `json:"assigned_to"`
	AssigneeName       string                  `json:"assignee_name,omitempty"`
	AssignedBy         string                  `json:"assigned_by"`
	AssignerName       string                  `json:"assigner_name,omitempty"`
	DataID             *string                 `json:"data_id,omitempty"`
	Status             models.AssignmentStatus `json:"status"`
	StatusName         string                  `json:"status_name"`
	ParentAssignmentID *string                 `json:"parent_assignment_id,omitempty"`
	DelegationChain    []string                `json:"delegation_chain"`
	LastAction         models.LastAction       `json:"last_action"`
	IsHolder           bool                    `json:"is_holder"`
	IsRead             bool                    `json:"is_read"`
	Remarks            string                  `json:"remarks,omitempty"`
	Instructions       string                  `json:"instructions,omitempty"`
	IsFinalized        bool                    `json:"is_finalized"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

func AssignmentConvert(rec dbmodels.Assignment) AssignmentView {
	view := AssignmentView{
		ID:                 rec.ID,
		TemplateID:         rec.TemplateID,
		AssignedTo:         rec.AssignedTo,
		AssignedBy:         rec.AssignedBy,
		DataID:             rec.DataID,
		Status:             rec.Status,
		StatusName:         rec.Status.ToHuman(),
		ParentAssignmentID: rec.ParentAssignmentID,
		DelegationChain:    rec.DelegationChain,
		LastAction:         rec.LastAction,
		IsHolder:           rec.IsHolder,
		IsRead:             rec.IsRead,
		Remarks:            rec.Remarks,
		Instructions:       rec.Instructions,
		IsFinalized:        rec.IsFinalized,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
	if view.DelegationChain == nil {
		view.DelegationChain = []string{}
	}
	if rec.Template != nil {
		view.TemplateTitle = rec.Template.Title
	}
	if rec.Assignee != nil {
		view.AssigneeName = rec.Assignee.GetFullName()
	}
	if rec.Assigner != nil {
		view.AssignerName = rec.Assigner.GetFullName()
	}
	return view
}

type SubmissionView struct {
	ID          string                  `json:"id"`
	TemplateID  string                  `json:"template_id"`
	SubmittedBy string                  `json:"submitted_by"`
	Data        dbmodels.SubmissionData `json:"data"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func SubmissionConvert(rec dbmodels.Submission) SubmissionView {
	return SubmissionView{
		ID:          rec.ID,
		TemplateID:  rec.TemplateID,
		SubmittedBy: rec.SubmittedBy,
		Data:        rec.Data,
		UpdatedAt:   rec.UpdatedAt,
	}
}
