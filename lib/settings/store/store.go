package settingsstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"refdesk-backend/models"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.SystemSetting) error
	Update(code models.SystemSettingCode, value string) error
	List() (settingsList []dbmodels.SystemSetting, err error)
	GetByCode(code models.SystemSettingCode) (*dbmodels.SystemSetting, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SystemSetting) error {
	return i.db.
		Save(&rec).
		Error
}

func (i impl) GetByCode(code models.SystemSettingCode) (*dbmodels.SystemSetting, error) {
	rec := dbmodels.SystemSetting{}
	err := i.db.
		Where("code = ?", code).
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

func (i impl) List() (settingsList []dbmodels.SystemSetting, err error) {
	err = i.db.Model(dbmodels.SystemSetting{}).
		Order("code").
		Find(&settingsList).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return settingsList, nil
}

func (i impl) Update(code models.SystemSettingCode, value string) error {
	tx := i.db.
		Model(&dbmodels.SystemSetting{}).
		Where("code = ?", code).
		Updates(map[string]interface{}{"value": value})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("setting not found")
	}
	return nil
}
