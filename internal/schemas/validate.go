// Package schemas provides JSON Schema validation for language-model replies
// before they are unmarshalled into canonical records.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume_schema.json
var resumeSchema string

//go:embed job_schema.json
var jobSchema string

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:", ve.Schema)
	for _, fe := range ve.Errors {
		fmt.Fprintf(&sb, "\n  %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

// ValidateResumeReply checks a gateway reply against the ParsedResume schema.
func ValidateResumeReply(jsonText string) error {
	return validate("ParsedResume", resumeSchema, jsonText)
}

// ValidateJobReply checks a gateway reply against the ParsedJob schema.
func ValidateJobReply(jsonText string) error {
	return validate("ParsedJob", jobSchema, jsonText)
}

func validate(name, schema, jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate %s reply: %w", name, err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
