package attachmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Attachment) (id string, err error)
	GetByID(id string) (*dbmodels.Attachment, error)
	ListByOwner(ownerType, ownerID string) ([]dbmodels.Attachment, error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		DB: DB,
	}
}

type impl struct {
	DB *gorm.DB
}

func (i impl) Create(rec dbmodels.Attachment) (id string, err error) {
	err = i.DB.Create(&rec).Error
	if err != nil {
		return "", errors.Wrap(err, "failed to create attachment record")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Attachment, error) {
	var rec dbmodels.Attachment
	err := i.DB.Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get attachment record")
	}
	return &rec, nil
}

func (i impl) ListByOwner(ownerType, ownerID string) ([]dbmodels.Attachment, error) {
	var recList []dbmodels.Attachment
	err := i.DB.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("created_at desc").
		Find(&recList).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list attachment records")
	}
	return recList, nil
}

func (i impl) Delete(id string) error {
	result := i.DB.Where("id = ?", id).Delete(&dbmodels.Attachment{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete attachment record")
	}
	if result.RowsAffected == 0 {
		return errors.New("attachment record not found")
	}
	return nil
}
