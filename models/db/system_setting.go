package dbmodels

import (
	"refdesk-backend/models"
	settingsapimodels "refdesk-backend/models/api/settings"
)

type SystemSetting struct {
	BaseModel
	Name  string                   `gorm:"type:varchar(255)"`
	Code  models.SystemSettingCode `gorm:"type:varchar(255);uniqueIndex"`
	Value string                   `gorm:"type:varchar(500)"`
}

func (r SystemSetting) ToModelView() settingsapimodels.SystemSettingView {
	return settingsapimodels.SystemSettingView{
		ID:    r.ID,
		Name:  r.Name,
		Code:  r.Code,
		Value: r.Value,
	}
}

var DefaultApprovalDesignationsSetting = SystemSetting{
	Name:  "Designations with approval authority (comma separated)",
	Code:  models.ApprovalDesignationsSetting,
	Value: "Director,Deputy Director,Section Head",
}

var DefaultAllowChainRedelegationSetting = SystemSetting{
	Name:  "Allow delegating back to an earlier chain member",
	Code:  models.AllowChainRedelegationSetting,
	Value: "false",
}

var DefaultReferenceArchiveAfterSetting = SystemSetting{
	Name:  "Days after closing before a reference is archived",
	Code:  models.ReferenceArchiveAfterSetting,
	Value: "90",
}

var DefaultReferencePurgeAfterSetting = SystemSetting{
	Name:  "Days after archiving before a reference is purged",
	Code:  models.ReferencePurgeAfterSetting,
	Value: "365",
}

var DefaultNotificationEmailSetting = SystemSetting{
	Name:  "Send notification emails",
	Code:  models.NotificationEmailSetting,
	Value: "false",
}

var DefaultNotificationSenderSetting = SystemSetting{
	Name:  "Sender address for notification emails",
	Code:  models.NotificationSenderSetting,
	Value: "",
}

var DefaultSettingsMap = map[models.SystemSettingCode]SystemSetting{
	models.ApprovalDesignationsSetting:   DefaultApprovalDesignationsSetting,
	models.AllowChainRedelegationSetting: DefaultAllowChainRedelegationSetting,
	models.ReferenceArchiveAfterSetting:  DefaultReferenceArchiveAfterSetting,
	models.ReferencePurgeAfterSetting:    DefaultReferencePurgeAfterSetting,
	models.NotificationEmailSetting:      DefaultNotificationEmailSetting,
	models.NotificationSenderSetting:     DefaultNotificationSenderSetting,
}
