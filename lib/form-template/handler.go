package templatehandler

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"refdesk-backend/db"
	audithandler "refdesk-backend/lib/audit"
	templatestore "refdesk-backend/lib/form-template/store"
	notificationhandler "refdesk-backend/lib/notification"
	usersstore "refdesk-backend/lib/users/store"
	assignmentstore "refdesk-backend/lib/workflow/assignment-store"
	"refdesk-backend/models"
	formapimodels "refdesk-backend/models/api/form"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(userID string, data formapimodels.TemplateData) (id string, err error)
	GetByID(id string) (formapimodels.TemplateView, error)
	List(userID string, filter formapimodels.TemplateFilter) ([]formapimodels.TemplateView, error)
	Update(userID, id string, data formapimodels.TemplateData) error
	Delete(userID, id string) error
	Clone(userID, id string) (newID string, err error)
	Share(userID, id string, data formapimodels.TemplateShareData) (assignmentIDs []string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           templatestore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
		userStore:       usersstore.NewInstance(db.DB),
		notifier:        notificationhandler.Instance,
		audit:           audithandler.Instance,
		db:              db.DB,
	}
}

type impl struct {
	store           templatestore.Provider
	assignmentStore assignmentstore.Provider
	userStore       usersstore.Provider
	notifier        notificationhandler.Provider
	audit           audithandler.Provider
	db              *gorm.DB
}

func (i impl) Create(userID string, data formapimodels.TemplateData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	rec := dbmodels.Template{
		Title:       data.Title,
		Description: data.Description,
		Fields:      dbmodels.TemplateFields{Fields: data.Fields},
		CreatedBy:   userID,
		IsActive:    true,
		Deadline:    data.Deadline,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to create template")
		return "", err
	}
	logger.WithField("rec_id", id).Info("template created")
	i.audit.Log(userID, "template", id, "create", dbmodels.EntityChanges{Description: "template created"})
	return id, nil
}

func (i impl) GetByID(id string) (formapimodels.TemplateView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return formapimodels.TemplateView{}, err
	}
	return formapimodels.TemplateConvert(*rec), nil
}

func (i impl) List(userID string, filter formapimodels.TemplateFilter) ([]formapimodels.TemplateView, error) {
	page, limit := filter.GetPage()
	var recList []dbmodels.Template
	var err error
	switch filter.Scope {
	case "owned":
		recList, err = i.store.ListOwned(userID, page, limit)
	case "shared_with_me":
		recList, err = i.store.ListSharedWith(userID, page, limit)
	default:
		recList, err = i.store.ListActive(page, limit)
	}
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to list templates")
		return nil, err
	}
	result := make([]formapimodels.TemplateView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, formapimodels.TemplateConvert(rec))
	}
	return result, nil
}

func (i impl) Update(userID, id string, data formapimodels.TemplateData) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.CreatedBy != userID {
		return models.NewForbiddenError("only the template creator may edit it")
	}
	updMap := map[string]interface{}{
		"title":       data.Title,
		"description": data.Description,
		"deadline":    data.Deadline,
	}
	if !fieldsEqual(rec.Fields.Fields, data.Fields) {
		if rec.IsLocked {
			return models.NewConflictError("the field schema is frozen once the template has been shared")
		}
		updMap["fields"] = dbmodels.TemplateFields{Fields: data.Fields}
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update template")
		return err
	}
	logger.Info("template updated")
	i.audit.Log(userID, "template", id, "update", dbmodels.EntityChanges{Description: "template updated"})
	return nil
}

func (i impl) Delete(userID, id string) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.CreatedBy != userID {
		return models.NewForbiddenError("only the template creator may delete it")
	}
	count, err := i.assignmentStore.CountByTemplate(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("template has assignments and can not be deleted")
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("failed to delete template")
		return err
	}
	logger.Info("template deleted")
	i.audit.Log(userID, "template", id, "delete", dbmodels.EntityChanges{Description: "template deleted"})
	return nil
}

func (i impl) Clone(userID, id string) (newID string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return "", err
	}
	clone := dbmodels.Template{
		Title:       rec.Title + " (copy)",
		Description: rec.Description,
		Fields:      rec.Fields,
		CreatedBy:   userID,
		IsActive:    true,
		Deadline:    rec.Deadline,
	}
	newID, err = i.store.Create(clone)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("failed to clone template")
		return "", err
	}
	log.WithField("rec_id", newID).Info("template cloned")
	return newID, nil
}

func (i impl) Share(userID, id string, data formapimodels.TemplateShareData) (assignmentIDs []string, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return nil, err
	}
	if rec.CreatedBy != userID {
		return nil, models.NewForbiddenError("only the template creator may share it")
	}
	if !rec.IsActive {
		return nil, models.NewConflictError("inactive template can not be shared")
	}
	for _, targetID := range data.UserIDs {
		user, err := i.userStore.GetByID(targetID)
		if err != nil {
			return nil, err
		}
		if user == nil || !user.IsActive {
			return nil, models.NewNotFoundError("user " + targetID + " not found")
		}
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := templatestore.NewInstance(tx)
		aStore := assignmentstore.NewInstance(tx)
		for _, targetID := range data.UserIDs {
			assignment := dbmodels.Assignment{
				TemplateID:      id,
				AssignedTo:      targetID,
				AssignedBy:      userID,
				Status:          models.AssignmentPending,
				DelegationChain: dbmodels.UserIDList{},
				IsHolder:        true,
				Remarks:         data.Remarks,
				Instructions:    data.Instructions,
			}
			assignmentID, err := aStore.Create(assignment)
			if err != nil {
				return err
			}
			assignmentIDs = append(assignmentIDs, assignmentID)
		}
		// first share freezes the field schema
		if !rec.IsLocked {
			return store.Update(id, map[string]interface{}{"is_locked": true})
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("failed to share template")
		return nil, err
	}
	for idx, targetID := range data.UserIDs {
		i.notifier.Send(targetID, models.NotifyFormShared, "A form was shared with you",
			"Form \""+rec.Title+"\" has been assigned to you.", assignmentIDs[idx])
	}
	i.audit.Log(userID, "template", id, "share", dbmodels.EntityChanges{Description: "template shared"})
	logger.WithField("assignments", len(assignmentIDs)).Info("template shared")
	return assignmentIDs, nil
}

func (i impl) getRec(id string) (*dbmodels.Template, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("failed to load template")
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("template not found")
	}
	return rec, nil
}

func fieldsEqual(a, b []dbmodels.TemplateField) bool {
	aJSON, _ := json.Marshal(a)
	bJSON, _ := json.Marshal(b)
	return string(aJSON) == string(bJSON)
}
