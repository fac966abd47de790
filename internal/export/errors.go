// Package export turns rendered CV documents into downloadable files.
package export

import "fmt"

// ExportError represents a failure producing an export file
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
