package db

import (
	log "github.com/sirupsen/logrus"
	settingsstore "refdesk-backend/lib/settings/store"
	dbmodels "refdesk-backend/models/db"
)

func InitPreload() {
	fillSystemSettings()
}

func fillSystemSettings() {
	store := settingsstore.NewInstance(DB)
	for code, defaultRec := range dbmodels.DefaultSettingsMap {
		existed, err := store.GetByCode(code)
		if err != nil {
			log.WithError(err).WithField("setting_code", code).Error("failed to preload system setting")
			continue
		}
		if existed != nil {
			continue
		}
		if err := store.Create(defaultRec); err != nil {
			log.WithError(err).WithField("setting_code", code).Error("failed to preload system setting")
		}
	}
}
