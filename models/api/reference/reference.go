package referenceapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"refdesk-backend/models"
	apimodels "refdesk-backend/models/api"
	dbmodels "refdesk-backend/models/db"
)

type ReferenceData struct {
	RefNumber string                   `json:"ref_number"`
	Subject   string                   `json:"subject"`
	Kind      models.ReferenceKind     `json:"kind"`
	Priority  models.ReferencePriority `json:"priority"`
	HeldBy    string                   `json:"held_by,omitempty"`
	Remarks   string                   `json:"remarks,omitempty"`
	DueDate   *time.Time               `json:"due_date,omitempty"`
}

func (r ReferenceData) Validate() error {
	if strings.TrimSpace(r.RefNumber) == "" {
		return errors.New("ref_number is required")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return errors.New("subject is required")
	}
	if !r.Kind.IsValid() {
		return errors.Errorf("unknown reference kind (%v)", r.Kind)
	}
	if !r.Priority.IsValid() {
		return errors.Errorf("unknown priority (%v)", r.Priority)
	}
	return nil
}

type ReferenceMoveData struct {
	TargetUserID string `json:"target_user_id"`
	Remarks      string `json:"remarks,omitempty"`
}

func (r ReferenceMoveData) Validate() error {
	if r.TargetUserID == "" {
		return errors.New("target_user_id is required")
	}
	return nil
}

type ReferenceCloseData struct {
	Remarks string `json:"remarks,omitempty"`
}

type ReferenceFilter struct {
	Kind     models.ReferenceKind     `json:"kind,omitempty"`
	Status   models.ReferenceStatus   `json:"status,omitempty"`
	Priority models.ReferencePriority `json:"priority,omitempty"`
	HeldByMe bool                     `json:"held_by_me,omitempty"`
	Search   string                   `json:"search,omitempty"`
	apimodels.Pagination
}

func (r ReferenceFilter) Validate() error {
	if r.Kind != "" && !r.Kind.IsValid() {
		return errors.Errorf("unknown reference kind (%v)", r.Kind)
	}
	if r.Priority != "" && !r.Priority.IsValid() {
		return errors.Errorf("unknown priority (%v)", r.Priority)
	}
	return nil
}

type ReferenceView struct {
	ID          string                   `json:"id"`
	RefNumber   string                   `json:"ref_number"`
	Subject     string                   `json:"subject"`
	Kind        models.ReferenceKind     `json:"kind"`
	Status      models.ReferenceStatus   `json:"status"`
	Priority    models.ReferencePriority `json:"priority"`
	HeldBy      string                   `json:"held_by"`
	HolderName  string                   `json:"holder_name,omitempty"`
	CreatedBy   string                   `json:"created_by"`
	CreatorName string                   `json:"creator_name,omitempty"`
	Remarks     string                   `json:"remarks,omitempty"`
	DueDate     *time.Time               `json:"due_date,omitempty"`
	ClosedAt    *time.Time               `json:"closed_at,omitempty"`
	ArchivedAt  *time.Time               `json:"archived_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

func ReferenceConvert(rec dbmodels.Reference) ReferenceView {
	view := ReferenceView{
		ID:         rec.ID,
		RefNumber:  rec.RefNumber,
		Subject:    rec.Subject,
		Kind:       rec.Kind,
		Status:     rec.Status,
		Priority:   rec.Priority,
		HeldBy:     rec.HeldBy,
		CreatedBy:  rec.CreatedBy,
		Remarks:    rec.Remarks,
		DueDate:    rec.DueDate,
		ClosedAt:   rec.ClosedAt,
		ArchivedAt: rec.ArchivedAt,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Holder != nil {
		view.HolderName = rec.Holder.GetFullName()
	}
	if rec.Creator != nil {
		view.CreatorName = rec.Creator.GetFullName()
	}
	return view
}
