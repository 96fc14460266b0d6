package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"refdesk-backend/models"
)

// Assignment binds one user to one form template at one point in a delegation
// chain. IsHolder marks the single assignment in a chain that currently holds
// the work; every mutating workflow operation requires it.
type Assignment struct {
	BaseModel
	TemplateID string    `gorm:"type:varchar(36);index"`
	Template   *Template `gorm:"foreignKey:TemplateID"`
	AssignedTo string    `gorm:"type:varchar(36);index"`
	Assignee   *User     `gorm:"foreignKey:AssignedTo"`
	AssignedBy string    `gorm:"type:varchar(36)"`
	Assigner   *User     `gorm:"foreignKey:AssignedBy"`
	// DataID references the chain's shared submission once a draft exists.
	DataID             *string `gorm:"type:varchar(36)"`
	Status             models.AssignmentStatus
	ParentAssignmentID *string    `gorm:"type:varchar(36);index"`
	DelegationChain    UserIDList `gorm:"type:jsonb"`
	LastAction         models.LastAction
	IsHolder           bool `gorm:"default:true"`
	IsRead             bool
	Remarks            string `gorm:"type:text"`
	Instructions       string `gorm:"type:text"` // written once on creation, never updated
	IsFinalized        bool
}

type UserIDList []string

func (j UserIDList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *UserIDList) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

func (j UserIDList) Contains(userID string) bool {
	for _, id := range j {
		if id == userID {
			return true
		}
	}
	return false
}

func (j UserIDList) Last() string {
	if len(j) == 0 {
		return ""
	}
	return j[len(j)-1]
}
