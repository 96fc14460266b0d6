package auditstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AuditLog) (id string, err error)
	List(entity, entityID, userID string, page, limit int) (list []dbmodels.AuditLog, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AuditLog) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(entity, entityID, userID string, page, limit int) (list []dbmodels.AuditLog, rowCount int64, err error) {
	list = []dbmodels.AuditLog{}
	tx := i.db.Model(&dbmodels.AuditLog{})
	if entity != "" {
		tx = tx.Where("entity = ?", entity)
	}
	if entityID != "" {
		tx = tx.Where("entity_id = ?", entityID)
	}
	if userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rowCount, nil
		}
		return nil, 0, err
	}
	return list, rowCount, nil
}
