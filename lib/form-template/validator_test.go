package templatehandler

import (
	"testing"

	"refdesk-backend/models"
	dbmodels "refdesk-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testFields() dbmodels.TemplateFields {
	return dbmodels.TemplateFields{
		Fields: []dbmodels.TemplateField{
			{ID: "full_name", Type: "text", Label: "Full name", Required: true, MinLen: 2, MaxLen: 100},
			{ID: "age", Type: "number", Label: "Age"},
			{ID: "grade", Type: "select", Label: "Grade", Required: true, Options: []string{"A", "B", "C"}},
			{ID: "joined", Type: "date", Label: "Joined"},
			{ID: "remote", Type: "checkbox", Label: "Remote"},
		},
	}
}

func TestBuildSchema(t *testing.T) {
	schema := BuildSchema(testFields())

	require.Equal(t, "object", schema["type"])
	require.Equal(t, false, schema["additionalProperties"])
	require.ElementsMatch(t, []string{"full_name", "grade"}, schema["required"])

	properties, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	require.Len(t, properties, 5)

	grade, ok := properties["grade"].(map[string]interface{})
	require.True(t, ok)
	require.ElementsMatch(t, []interface{}{"A", "B", "C"}, grade["enum"])
}

func TestValidateSubmission(t *testing.T) {
	fields := testFields()

	t.Run(`valid payload`, func(t *testing.T) {
		data := dbmodels.SubmissionData{
			"full_name": "Jane Roe",
			"age":       34,
			"grade":     "B",
			"joined":    "2024-05-12",
			"remote":    true,
		}
		err := ValidateSubmission(fields, data)
		require.Nil(t, err)
	})

	t.Run(`missing required field`, func(t *testing.T) {
		data := dbmodels.SubmissionData{
			"full_name": "Jane Roe",
		}
		err := ValidateSubmission(fields, data)
		require.NotNil(t, err)
		domainErr, ok := models.AsDomainError(err)
		require.True(t, ok)
		require.Equal(t, models.ErrCodeValidation, domainErr.Code)
		require.Equal(t, "submitted data failed validation", domainErr.Message)
		require.Contains(t, domainErr.Fields, "grade")
	})

	t.Run(`rejects the whole payload on a single bad field`, func(t *testing.T) {
		data := dbmodels.SubmissionData{
			"full_name": "Jane Roe",
			"grade":     "D",
			"joined":    "12.05.2024",
		}
		err := ValidateSubmission(fields, data)
		require.NotNil(t, err)
		domainErr, ok := models.AsDomainError(err)
		require.True(t, ok)
		require.Contains(t, domainErr.Fields, "grade")
		require.Contains(t, domainErr.Fields, "joined")
	})

	t.Run(`unknown field is rejected`, func(t *testing.T) {
		data := dbmodels.SubmissionData{
			"full_name": "Jane Roe",
			"grade":     "A",
			"extra":     "nope",
		}
		err := ValidateSubmission(fields, data)
		require.NotNil(t, err)
		domainErr, ok := models.AsDomainError(err)
		require.True(t, ok)
		require.Contains(t, domainErr.Fields, "extra")
	})

	t.Run(`type mismatch`, func(t *testing.T) {
		data := dbmodels.SubmissionData{
			"full_name": "Jane Roe",
			"grade":     "A",
			"age":       "not a number",
		}
		err := ValidateSubmission(fields, data)
		require.NotNil(t, err)
		domainErr, ok := models.AsDomainError(err)
		require.True(t, ok)
		require.Contains(t, domainErr.Fields, "age")
	})
}
