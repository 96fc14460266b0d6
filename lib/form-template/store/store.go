package templatestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Template) (id string, err error)
	GetByID(id string) (rec *dbmodels.Template, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ListOwned(userID string, page, limit int) (list []dbmodels.Template, err error)
	ListSharedWith(userID string, page, limit int) (list []dbmodels.Template, err error)
	ListActive(page, limit int) (list []dbmodels.Template, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Template) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Template, error) {
	rec := dbmodels.Template{}
	err := i.db.
		Where("id = ?", id).
		Preload("Creator").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Template{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("template not found")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Template{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) ListOwned(userID string, page, limit int) (list []dbmodels.Template, err error) {
	return i.list(i.db.Where("created_by = ?", userID), page, limit)
}

func (i impl) ListSharedWith(userID string, page, limit int) (list []dbmodels.Template, err error) {
	sub := i.db.
		Model(&dbmodels.Assignment{}).
		Select("template_id").
		Where("assigned_to = ?", userID)
	return i.list(i.db.Where("id IN (?)", sub), page, limit)
}

func (i impl) ListActive(page, limit int) (list []dbmodels.Template, err error) {
	return i.list(i.db.Where("is_active = true"), page, limit)
}

func (i impl) list(tx *gorm.DB, page, limit int) (list []dbmodels.Template, err error) {
	list = []dbmodels.Template{}
	err = tx.
		Preload("Creator").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
