package dbmodels

type Attachment struct {
	BaseModel
	// OwnerType is "assignment" or "reference".
	OwnerType   string `gorm:"type:varchar(32);index:idx_attachment_owner"`
	OwnerID     string `gorm:"type:varchar(36);index:idx_attachment_owner"`
	FileName    string `gorm:"type:varchar(255)"`
	ObjectKey   string `gorm:"type:varchar(255);uniqueIndex"`
	ContentType string `gorm:"type:varchar(128)"`
	Size        int64
	UploadedBy  string `gorm:"type:varchar(36)"`
}
