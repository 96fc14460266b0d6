package audithandler

import (
	log "github.com/sirupsen/logrus"
	"refdesk-backend/db"
	auditstore "refdesk-backend/lib/audit/store"
	auditapimodels "refdesk-backend/models/api/audit"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	// Log writes an audit entry; failures are logged and swallowed so that a
	// broken audit trail never rolls back the audited mutation.
	Log(userID, entity, entityID, action string, changes dbmodels.EntityChanges)
	List(filter auditapimodels.AuditFilter) ([]auditapimodels.AuditLogView, int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: auditstore.NewInstance(db.DB),
	}
}

type impl struct {
	store auditstore.Provider
}

func (i impl) Log(userID, entity, entityID, action string, changes dbmodels.EntityChanges) {
	rec := dbmodels.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Changes:  changes,
	}
	if _, err := i.store.Create(rec); err != nil {
		log.
			WithField("entity", entity).
			WithField("entity_id", entityID).
			WithField("action", action).
			WithError(err).
			Error("failed to write audit entry")
	}
}

func (i impl) List(filter auditapimodels.AuditFilter) ([]auditapimodels.AuditLogView, int64, error) {
	page, limit := filter.GetPage()
	recList, rowCount, err := i.store.List(filter.Entity, filter.EntityID, filter.UserID, page, limit)
	if err != nil {
		log.WithError(err).Error("failed to list audit entries")
		return nil, 0, err
	}
	result := make([]auditapimodels.AuditLogView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, auditapimodels.AuditLogConvert(rec))
	}
	return result, rowCount, nil
}
