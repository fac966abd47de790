// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import "fmt"

// TemplateError reports a renderer that cannot be registered. TemplateID is
// empty when the renderer has no id at all.
type TemplateError struct {
	TemplateID string
	Message    string
}

func (e *TemplateError) Error() string {
	if e.TemplateID != "" {
		return fmt.Sprintf("template %q: %s", e.TemplateID, e.Message)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

// RenderError represents a failure serializing a presentation tree
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
