package formapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	apimodels "refdesk-backend/models/api"
	dbmodels "refdesk-backend/models/db"
)

var knownFieldTypes = map[string]bool{
	"text":     true,
	"textarea": true,
	"number":   true,
	"date":     true,
	"select":   true,
	"checkbox": true,
}

type TemplateData struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Fields      []dbmodels.TemplateField `json:"fields"`
	Deadline    *time.Time               `json:"deadline,omitempty"`
}

func (r TemplateData) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("template title is required")
	}
	if len(r.Fields) == 0 {
		return errors.New("template must define at least one field")
	}
	seen := map[string]bool{}
	for _, field := range r.Fields {
		if strings.TrimSpace(field.ID) == "" {
			return errors.New("every field needs an id")
		}
		if seen[field.ID] {
			return errors.Errorf("duplicate field id (%v)", field.ID)
		}
		seen[field.ID] = true
		if !knownFieldTypes[field.Type] {
			return errors.Errorf("unknown field type (%v)", field.Type)
		}
		if field.Type == "select" && len(field.Options) == 0 {
			return errors.Errorf("select field %v needs options", field.ID)
		}
	}
	return nil
}

type TemplateShareData struct {
	UserIDs      []string `json:"user_ids"`
	Instructions string   `json:"instructions"`
	Remarks      string   `json:"remarks"`
}

func (r TemplateShareData) Validate() error {
	if len(r.UserIDs) == 0 {
		return errors.New("at least one user is required")
	}
	return nil
}

type TemplateFilter struct {
	Scope string `json:"scope"` // owned | shared_with_me | active
	apimodels.Pagination
}

func (r TemplateFilter) Validate() error {
	switch r.Scope {
	case "", "owned", "shared_with_me", "active":
		return nil
	}
	return errors.Errorf("unknown scope (%v)", r.Scope)
}

type TemplateView struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Fields      []dbmodels.TemplateField `json:"fields"`
	CreatedBy   string                   `json:"created_by"`
	CreatorName string                   `json:"creator_name,omitempty"`
	IsActive    bool                     `json:"is_active"`
	IsLocked    bool                     `json:"is_locked"`
	Deadline    *time.Time               `json:"deadline,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

func TemplateConvert(rec dbmodels.Template) TemplateView {
	view := TemplateView{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Fields:      rec.Fields.Fields,
		CreatedBy:   rec.CreatedBy,
		IsActive:    rec.IsActive,
		IsLocked:    rec.IsLocked,
		Deadline:    rec.Deadline,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Creator != nil {
		view.CreatorName = rec.Creator.GetFullName()
	}
	return view
}
