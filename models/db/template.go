package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type Template struct {
	BaseModel
	Title       string         `gorm:"type:varchar(255)"`
	Description string         `gorm:"type:text"`
	Fields      TemplateFields `gorm:"type:jsonb"`
	CreatedBy   string         `gorm:"type:varchar(36);index"`
	Creator     *User          `gorm:"foreignKey:CreatedBy"`
	IsActive    bool           `gorm:"default:true"`
	// IsLocked is set when the template is first shared; the field schema is
	// frozen from that point on so in-flight submissions keep valid field ids.
	IsLocked bool
	Deadline *time.Time
}

type TemplateFields struct {
	Fields []TemplateField `json:"fields"`
}

type TemplateField struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // text, number, date, select, checkbox, textarea
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	MinLen   int      `json:"min_len,omitempty"`
	MaxLen   int      `json:"max_len,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
}

func (j TemplateFields) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *TemplateFields) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

func (j TemplateFields) FieldByID(id string) (TemplateField, bool) {
	for _, field := range j.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return TemplateField{}, false
}
