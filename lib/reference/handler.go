package referencehandler

import (
	"time"

	log "github.com/sirupsen/logrus"
	"refdesk-backend/db"
	audithandler "refdesk-backend/lib/audit"
	notificationhandler "refdesk-backend/lib/notification"
	referencestore "refdesk-backend/lib/reference/store"
	usersstore "refdesk-backend/lib/users/store"
	"refdesk-backend/models"
	referenceapimodels "refdesk-backend/models/api/reference"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(userID string, data referenceapimodels.ReferenceData) (id string, err error)
	GetByID(id string) (referenceapimodels.ReferenceView, error)
	Update(userID, id string, data referenceapimodels.ReferenceData) error
	Delete(userID, id string) error
	Move(userID, id string, data referenceapimodels.ReferenceMoveData) (referenceapimodels.ReferenceView, error)
	Close(userID, id string, remarks string) error
	List(userID string, filter referenceapimodels.ReferenceFilter) ([]referenceapimodels.ReferenceView, int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     referencestore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
		notifier:  notificationhandler.Instance,
		audit:     audithandler.Instance,
	}
}

type impl struct {
	store     referencestore.Provider
	userStore usersstore.Provider
	notifier  notificationhandler.Provider
	audit     audithandler.Provider
}

func (i impl) Create(userID string, data referenceapimodels.ReferenceData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	exist, err := i.store.ExistByRefNumber(data.RefNumber)
	if err != nil {
		return "", err
	}
	if exist {
		return "", models.NewConflictError("reference number already registered")
	}
	holder := data.HeldBy
	if holder == "" {
		holder = userID
	}
	id, err = i.store.Create(dbmodels.Reference{
		RefNumber: data.RefNumber,
		Subject:   data.Subject,
		Kind:      data.Kind,
		Status:    models.ReferenceOpen,
		Priority:  data.Priority,
		HeldBy:    holder,
		CreatedBy: userID,
		Remarks:   data.Remarks,
		DueDate:   data.DueDate,
	})
	if err != nil {
		logger.WithError(err).Error("failed to create reference")
		return "", err
	}
	logger.WithField("rec_id", id).Info("reference created")
	i.audit.Log(userID, "reference", id, "create", dbmodels.EntityChanges{Description: "reference registered"})
	return id, nil
}

func (i impl) GetByID(id string) (referenceapimodels.ReferenceView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return referenceapimodels.ReferenceView{}, err
	}
	return referenceapimodels.ReferenceConvert(*rec), nil
}

func (i impl) Update(userID, id string, data referenceapimodels.ReferenceData) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.Status == models.ReferenceClosed || rec.Status == models.ReferenceArchived {
		return models.NewConflictError("closed reference can not be edited")
	}
	if rec.RefNumber != data.RefNumber {
		exist, err := i.store.ExistByRefNumber(data.RefNumber)
		if err != nil {
			return err
		}
		if exist {
			return models.NewConflictError("reference number already registered")
		}
	}
	err = i.store.Update(id, map[string]interface{}{
		"ref_number": data.RefNumber,
		"subject":    data.Subject,
		"kind":       data.Kind,
		"priority":   data.Priority,
		"remarks":    data.Remarks,
		"due_date":   data.DueDate,
	})
	if err != nil {
		logger.WithError(err).Error("failed to update reference")
		return err
	}
	logger.Info("reference updated")
	i.audit.Log(userID, "reference", id, "update", dbmodels.EntityChanges{Description: "reference updated"})
	return nil
}

func (i impl) Delete(userID, id string) error {
	logger := log.WithField("rec_id", id)
	if _, err := i.getRec(id); err != nil {
		return err
	}
	err := i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("failed to delete reference")
		return err
	}
	logger.Info("reference deleted")
	i.audit.Log(userID, "reference", id, "delete", dbmodels.EntityChanges{Description: "reference deleted"})
	return nil
}

func (i impl) Move(userID, id string, data referenceapimodels.ReferenceMoveData) (view referenceapimodels.ReferenceView, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return view, err
	}
	if rec.HeldBy != userID && rec.CreatedBy != userID {
		return view, models.NewForbiddenError("only the current holder or the creator may move a reference")
	}
	if rec.Status == models.ReferenceClosed || rec.Status == models.ReferenceArchived {
		return view, models.NewConflictError("closed reference can not be moved")
	}
	target, err := i.userStore.GetByID(data.TargetUserID)
	if err != nil {
		return view, err
	}
	if target == nil || !target.IsActive {
		return view, models.NewNotFoundError("target user not found")
	}
	err = i.store.Update(id, map[string]interface{}{
		"held_by": data.TargetUserID,
		"status":  models.ReferenceInProgress,
		"remarks": data.Remarks,
	})
	if err != nil {
		logger.WithError(err).Error("failed to move reference")
		return view, err
	}
	logger.WithField("target", data.TargetUserID).Info("reference moved")
	i.notifier.Send(data.TargetUserID, models.NotifyReferenceMoved, "A reference was moved to you",
		"Reference "+rec.RefNumber+" is now held by you.", id)
	i.audit.Log(userID, "reference", id, "move", dbmodels.EntityChanges{
		Description: "reference moved",
		Data: []dbmodels.FieldChanges{
			{Field: "held_by", OldValue: rec.HeldBy, NewValue: data.TargetUserID},
		},
	})
	return i.GetByID(id)
}

func (i impl) Close(userID, id string, remarks string) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.HeldBy != userID && rec.CreatedBy != userID {
		return models.NewForbiddenError("only the current holder or the creator may close a reference")
	}
	if !rec.Status.IsAllowChange(models.ReferenceClosed) {
		return models.NewConflictError("reference can not be closed from status " + string(rec.Status))
	}
	now := time.Now()
	err = i.store.Update(id, map[string]interface{}{
		"status":    models.ReferenceClosed,
		"closed_at": now,
		"remarks":   remarks,
	})
	if err != nil {
		logger.WithError(err).Error("failed to close reference")
		return err
	}
	logger.Info("reference closed")
	if rec.CreatedBy != userID {
		i.notifier.Send(rec.CreatedBy, models.NotifyReferenceClosed, "Reference closed",
			"Reference "+rec.RefNumber+" has been closed.", id)
	}
	i.audit.Log(userID, "reference", id, "close", dbmodels.EntityChanges{
		Description: "reference closed",
		Data: []dbmodels.FieldChanges{
			{Field: "status", OldValue: string(rec.Status), NewValue: string(models.ReferenceClosed)},
		},
	})
	return nil
}

func (i impl) List(userID string, filter referenceapimodels.ReferenceFilter) ([]referenceapimodels.ReferenceView, int64, error) {
	recList, count, err := i.store.List(userID, filter)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to list references")
		return nil, 0, err
	}
	result := make([]referenceapimodels.ReferenceView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, referenceapimodels.ReferenceConvert(rec))
	}
	return result, count, nil
}

func (i impl) getRec(id string) (*dbmodels.Reference, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("failed to load reference")
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("reference not found")
	}
	return rec, nil
}
