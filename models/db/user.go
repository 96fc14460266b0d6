package dbmodels

import (
	"fmt"
	"refdesk-backend/models"
)

type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255)"`
	FirstName    string `gorm:"type:varchar(255)"`
	LastName     string `gorm:"type:varchar(255)"`
	Designation  string `gorm:"type:varchar(255)"` // checked against the approval designation list
	Role         models.UserRole
	IsActive     bool `gorm:"default:true"`
}

func (u User) GetFullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
