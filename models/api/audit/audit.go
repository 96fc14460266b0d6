package auditapimodels

import (
	"time"

	apimodels "refdesk-backend/models/api"
	dbmodels "refdesk-backend/models/db"
)

type AuditFilter struct {
	Entity   string `json:"entity,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	apimodels.Pagination
}

func (r AuditFilter) Validate() error {
	return nil
}

type AuditLogView struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entity_id"`
	Action    string                 `json:"action"`
	Changes   dbmodels.EntityChanges `json:"changes"`
	CreatedAt time.Time              `json:"created_at"`
}

func AuditLogConvert(rec dbmodels.AuditLog) AuditLogView {
	return AuditLogView{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Entity:    rec.Entity,
		EntityID:  rec.EntityID,
		Action:    rec.Action,
		Changes:   rec.Changes,
		CreatedAt: rec.CreatedAt,
	}
}
