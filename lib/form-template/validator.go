package templatehandler

import (
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"refdesk-backend/models"
	dbmodels "refdesk-backend/models/db"
)

// BuildSchema translates the template field definitions into a JSON Schema
// document. Unknown field ids are rejected via additionalProperties.
func BuildSchema(fields dbmodels.TemplateFields) map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}
	for _, field := range fields.Fields {
		prop := map[string]interface{}{}
		switch field.Type {
		case "number":
			prop["type"] = "number"
		case "checkbox":
			prop["type"] = "boolean"
		case "select":
			prop["type"] = "string"
			options := make([]interface{}, 0, len(field.Options))
			for _, option := range field.Options {
				options = append(options, option)
			}
			prop["enum"] = options
		case "date":
			prop["type"] = "string"
			prop["pattern"] = `^\d{4}-\d{2}-\d{2}$`
		default: // text, textarea
			prop["type"] = "string"
			if field.MinLen > 0 {
				prop["minLength"] = field.MinLen
			}
			if field.MaxLen > 0 {
				prop["maxLength"] = field.MaxLen
			}
			if field.Pattern != "" {
				prop["pattern"] = field.Pattern
			}
		}
		properties[field.ID] = prop
		if field.Required {
			required = append(required, field.ID)
		}
	}
	schema := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ValidateSubmission checks data against the template schema. The whole
// payload is accepted or rejected; a rejection carries a field -> message map.
func ValidateSubmission(fields dbmodels.TemplateFields, data dbmodels.SubmissionData) error {
	schemaLoader := gojsonschema.NewGoLoader(BuildSchema(fields))
	documentLoader := gojsonschema.NewGoLoader(map[string]interface{}(data))
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.Wrap(err, "failed to run submission validation")
	}
	if result.Valid() {
		return nil
	}
	fieldErrors := map[string]string{}
	for _, resultError := range result.Errors() {
		field := resultError.Field()
		if field == "(root)" {
			if property, ok := resultError.Details()["property"].(string); ok {
				field = property
			}
		}
		fieldErrors[field] = resultError.Description()
	}
	return models.NewValidationError("submitted data failed validation", fieldErrors)
}
