package assignmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"refdesk-backend/models"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Assignment) (id string, err error)
	GetByID(id string) (*dbmodels.Assignment, error)
	// GetByTemplateAndAssignee resolves the user's latest assignment for a
	// template when the caller addresses work by template rather than by id.
	GetByTemplateAndAssignee(templateID, userID string) (*dbmodels.Assignment, error)
	Update(id string, updMap map[string]interface{}) error
	ListInbox(userID string, onlyUnread bool, status models.AssignmentStatus, page, limit int) ([]dbmodels.Assignment, error)
	ListSent(userID string, page, limit int) ([]dbmodels.Assignment, error)
	ListByTemplate(templateID string) ([]dbmodels.Assignment, error)
	// ListByData returns every assignment in the chain sharing one submission.
	ListByData(dataID string) ([]dbmodels.Assignment, error)
	CountByTemplate(templateID string) (int64, error)
	// Chain walks parent links from the given assignment up to the root.
	Chain(id string) ([]dbmodels.Assignment, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		DB: DB,
	}
}

type impl struct {
	DB *gorm.DB
}

func (i impl) Create(rec dbmodels.Assignment) (id string, err error) {
	err = i.DB.Omit("Template", "Assignee", "Assigner").Create(&rec).Error
	if err != nil {
		return "", errors.Wrap(err, "failed to create assignment record")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Assignment, error) {
	var rec dbmodels.Assignment
	err := i.DB.Preload("Template").Preload("Assignee").Preload("Assigner").
		Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get assignment record")
	}
	return &rec, nil
}

func (i impl) GetByTemplateAndAssignee(templateID, userID string) (*dbmodels.Assignment, error) {
	var rec dbmodels.Assignment
	err := i.DB.Preload("Template").
		Where("template_id = ? AND assigned_to = ?", templateID, userID).
		Order("created_at desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get assignment record")
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	result := i.DB.Model(&dbmodels.Assignment{}).Where("id = ?", id).Updates(updMap)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update assignment record")
	}
	if result.RowsAffected == 0 {
		return errors.New("assignment record not found")
	}
	return nil
}

func (i impl) ListInbox(userID string, onlyUnread bool, status models.AssignmentStatus, page, limit int) ([]dbmodels.Assignment, error) {
	query := i.DB.Preload("Template").Preload("Assigner").
		Where("assigned_to = ?", userID)
	if onlyUnread {
		query = query.Where("is_read = false")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var recList []dbmodels.Assignment
	err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&recList).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inbox assignments")
	}
	return recList, nil
}

func (i impl) ListSent(userID string, page, limit int) ([]dbmodels.Assignment, error) {
	var recList []dbmodels.Assignment
	err := i.DB.Preload("Template").Preload("Assignee").
		Where("assigned_by = ?", userID).
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&recList).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sent assignments")
	}
	return recList, nil
}

func (i impl) ListByTemplate(templateID string) ([]dbmodels.Assignment, error) {
	var recList []dbmodels.Assignment
	err := i.DB.Preload("Assignee").
		Where("template_id = ?", templateID).
		Order("created_at asc").
		Find(&recList).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list template assignments")
	}
	return recList, nil
}

func (i impl) ListByData(dataID string) ([]dbmodels.Assignment, error) {
	var recList []dbmodels.Assignment
	err := i.DB.
		Where("data_id = ?", dataID).
		Order("created_at asc").
		Find(&recList).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assignments by submission")
	}
	return recList, nil
}

func (i impl) CountByTemplate(templateID string) (int64, error) {
	var count int64
	err := i.DB.Model(&dbmodels.Assignment{}).Where("template_id = ?", templateID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count template assignments")
	}
	return count, nil
}

func (i impl) Chain(id string) ([]dbmodels.Assignment, error) {
	var chain []dbmodels.Assignment
	current := id
	for current != "" {
		rec, err := i.GetByID(current)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}
		chain = append(chain, *rec)
		if rec.ParentAssignmentID == nil {
			break
		}
		current = *rec.ParentAssignmentID
	}
	return chain, nil
}
