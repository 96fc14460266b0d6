package submissionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Submission) (id string, err error)
	GetByID(id string) (*dbmodels.Submission, error)
	Update(id string, updMap map[string]interface{}) error
	ListByTemplate(templateID string, page, limit int) ([]dbmodels.Submission, error)
	CountByTemplate(templateID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		DB: DB,
	}
}

type impl struct {
	DB *gorm.DB
}

func (i impl) Create(rec dbmodels.Submission) (id string, err error) {
	err = i.DB.Create(&rec).Error
	if err != nil {
		return "", errors.Wrap(err, "failed to create submission record")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Submission, error) {
	var rec dbmodels.Submission
	err := i.DB.Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get submission record")
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	result := i.DB.Model(&dbmodels.Submission{}).Where("id = ?", id).Updates(updMap)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update submission record")
	}
	if result.RowsAffected == 0 {
		return errors.New("submission record not found")
	}
	return nil
}

func (i impl) ListByTemplate(templateID string, page, limit int) ([]dbmodels.Submission, error) {
	var recList []dbmodels.Submission
	err := i.DB.Where("template_id = ?", templateID).
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&recList).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list submissions")
	}
	return recList, nil
}

func (i impl) CountByTemplate(templateID string) (int64, error) {
	var count int64
	err := i.DB.Model(&dbmodels.Submission{}).Where("template_id = ?", templateID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count submissions")
	}
	return count, nil
}
