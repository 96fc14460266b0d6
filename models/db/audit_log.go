package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
)

type AuditLog struct {
	BaseModel
	UserID   string        `gorm:"type:varchar(36);index"`
	Entity   string        `gorm:"type:varchar(64);index"`
	EntityID string        `gorm:"type:varchar(36);index"`
	Action   string        `gorm:"type:varchar(64)"`
	Changes  EntityChanges `gorm:"type:jsonb"`
}

type EntityChanges struct {
	Description string         `json:"description"`
	Data        []FieldChanges `json:"data"`
}

type FieldChanges struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

func (j EntityChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *EntityChanges) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
