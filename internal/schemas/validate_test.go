package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecordJSON_Valid(t *testing.T) {
	docs := map[string]string{
		"empty object":   `{}`,
		"null sections":  `{"personalInfo": null, "skills": null}`,
		"full shapes":    `{"personalInfo": {"fullName": "Ada"}, "professionalSummary": "Hi", "skills": [{"name": "Go", "level": ""}]}`,
		"unknown key":    `{"theme": "dark"}`,
		"shape mismatch": `{"professionalSummary": {"text": "moved"}, "skills": "Go"}`,
		"empty list":     `{"projects": []}`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidateRecordJSON([]byte(doc)))
		})
	}
}

func TestValidateRecordJSON_Invalid(t *testing.T) {
	docs := map[string]string{
		"number section":      `{"professionalSummary": 42}`,
		"non-string field":    `{"personalInfo": {"fullName": 7}}`,
		"nested list":         `{"skills": [["Go"]]}`,
		"list of strings":     `{"languages": ["English"]}`,
		"nested object field": `{"contactInfo": {"email": {"work": "a@b.c"}}}`,
		"root array":          `[]`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			err := ValidateRecordJSON([]byte(doc))
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateRecordJSON_Malformed(t *testing.T) {
	err := ValidateRecordJSON([]byte(`{"skills": [`))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateRecordJSON_FieldPath(t *testing.T) {
	err := ValidateRecordJSON([]byte(`{"skills": [{"name": true}]}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	var fields []string
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "skills")
}

func TestValidateDocument(t *testing.T) {
	schema := []byte(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["personalInfo"],
		"properties": {
			"personalInfo": {
				"type": "object",
				"required": ["fullName"],
				"properties": {"fullName": {"type": "string", "minLength": 1}}
			}
		}
	}`)

	assert.NoError(t, ValidateDocument("rules.json", schema, []byte(`{"personalInfo": {"fullName": "Ada"}}`)))

	err := ValidateDocument("rules.json", schema, []byte(`{"personalInfo": {"jobTitle": "Analyst"}}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "personalInfo", validationErr.Errors[0].Field)

	err = ValidateDocument("broken.json", []byte(`{"type": 12}`), []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "broken.json", loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "skills.0.name", Message: "Invalid type. Expected: string, given: boolean"},
			{Field: "professionalSummary", Message: "Must validate one and only one schema (oneOf)"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. skills.0.name")
	assert.Contains(t, msg, "2. professionalSummary")
}
