package dbmodels

import "refdesk-backend/models"

type Notification struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);index:idx_notification_user"`
	Code   models.NotificationCode
	Title  string `gorm:"type:varchar(255)"`
	Body   string `gorm:"type:text"`
	// RefID points at the subject record (assignment, reference, template).
	RefID  string `gorm:"type:varchar(36)"`
	IsRead bool   `gorm:"index:idx_notification_user"`
}
