package settingshandler

import (
	log "github.com/sirupsen/logrus"
	"refdesk-backend/db"
	settingsstore "refdesk-backend/lib/settings/store"
	"refdesk-backend/models"
	settingsapimodels "refdesk-backend/models/api/settings"
)

type Provider interface {
	UpdateSettingValue(settingCode models.SystemSettingCode, settingValue string) error
	GetList() (settingsList []settingsapimodels.SystemSettingView, err error)
	// Snapshot loads the whole configuration once; callers hold the returned
	// value for the duration of a request instead of re-reading single keys.
	Snapshot() (models.SettingsSnapshot, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: settingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	store settingsstore.Provider
}

func (i impl) UpdateSettingValue(settingCode models.SystemSettingCode, settingValue string) error {
	err := i.store.Update(settingCode, settingValue)
	if err != nil {
		log.WithFields(log.Fields{
			"setting_code":  settingCode,
			"setting_value": settingValue,
		}).
			WithError(err).
			Error("failed to update system setting")
		return err
	}
	return nil
}

func (i impl) GetList() (settingsList []settingsapimodels.SystemSettingView, err error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("failed to list system settings")
		return nil, err
	}
	for _, setting := range list {
		settingsList = append(settingsList, setting.ToModelView())
	}
	return settingsList, nil
}

func (i impl) Snapshot() (models.SettingsSnapshot, error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("failed to load settings snapshot")
		return models.SettingsSnapshot{}, err
	}
	values := make(map[models.SystemSettingCode]string, len(list))
	for _, setting := range list {
		values[setting.Code] = setting.Value
	}
	return models.ParseSettingsSnapshot(values), nil
}
