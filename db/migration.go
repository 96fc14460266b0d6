package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "refdesk-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "migration of User failed")
	}
	if err := DB.AutoMigrate(&dbmodels.SystemSetting{}); err != nil {
		return errors.Wrap(err, "migration of SystemSetting failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Template{}); err != nil {
		return errors.Wrap(err, "migration of Template failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Assignment{}); err != nil {
		return errors.Wrap(err, "migration of Assignment failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Submission{}); err != nil {
		return errors.Wrap(err, "migration of Submission failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Reference{}); err != nil {
		return errors.Wrap(err, "migration of Reference failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "migration of Notification failed")
	}
	if err := DB.AutoMigrate(&dbmodels.AuditLog{}); err != nil {
		return errors.Wrap(err, "migration of AuditLog failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Attachment{}); err != nil {
		return errors.Wrap(err, "migration of Attachment failed")
	}
	log.Info("migrations finished")
	return nil
}
