// Package schemas provides JSON Schema validation and file encoding for CV records.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	cvschemas "github.com/jonathan/cv-genie/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	recordSchema     *gojsonschema.Schema
	recordSchemaErr  error
	recordSchemaOnce sync.Once
)

func loadRecordSchema() (*gojsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		data, err := cvschemas.Read(cvschemas.RecordSchema)
		if err != nil {
			recordSchemaErr = &SchemaLoadError{Path: cvschemas.RecordSchema, Message: "schema not embedded", Cause: err}
			return
		}
		recordSchema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			recordSchemaErr = &SchemaLoadError{Path: cvschemas.RecordSchema, Message: "invalid schema", Cause: err}
		}
	})
	return recordSchema, recordSchemaErr
}

// ValidateRecordJSON checks that a JSON document has the shape the record
// decoder accepts. It does not require any section or constrain content.
func ValidateRecordJSON(data []byte) error {
	schema, err := loadRecordSchema()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to read record document: %w", err)
	}
	return resultError(result)
}

// ValidateDocument checks a JSON record document against a schema supplied
// by the user, such as house rules requiring a name or an email. path names
// the schema in errors.
func ValidateDocument(path string, schema, document []byte) error {
	loaded, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return &SchemaLoadError{Path: path, Message: "invalid schema", Cause: err}
	}
	result, err := loaded.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to read record document: %w", err)
	}
	return resultError(result)
}

func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
