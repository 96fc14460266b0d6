package dbmodels

import (
	"time"

	"refdesk-backend/models"
)

type Reference struct {
	BaseModel
	RefNumber string `gorm:"type:varchar(64);uniqueIndex"`
	Subject   string `gorm:"type:text"`
	Kind      models.ReferenceKind
	Status    models.ReferenceStatus
	Priority  models.ReferencePriority
	HeldBy    string `gorm:"type:varchar(36);index"`
	Holder    *User  `gorm:"foreignKey:HeldBy"`
	CreatedBy string `gorm:"type:varchar(36)"`
	Creator   *User  `gorm:"foreignKey:CreatedBy"`
	Remarks   string `gorm:"type:text"`
	DueDate   *time.Time
	ClosedAt  *time.Time
	ArchivedAt *time.Time
}
