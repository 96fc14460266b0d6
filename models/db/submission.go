package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
)

// Submission holds the field values entered against a template. One submission
// is shared by every assignment in a delegation chain via Assignment.DataID.
type Submission struct {
	BaseModel
	TemplateID  string         `gorm:"type:varchar(36);index"`
	SubmittedBy string         `gorm:"type:varchar(36)"`
	Data        SubmissionData `gorm:"type:jsonb"`
	IPAddress   string         `gorm:"type:varchar(45)"`
}

type SubmissionData map[string]any

func (j SubmissionData) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *SubmissionData) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
