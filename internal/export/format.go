// Package export turns rendered CV documents into downloadable files.
package export

import (
	"fmt"
	"strings"
)

// Format is an export file format
type Format string

// Supported formats
const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat accepts "pdf" or "png" in any case. An empty string means PDF.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatPDF):
		return FormatPDF, nil
	case string(FormatPNG):
		return FormatPNG, nil
	default:
		return "", &ExportError{Message: fmt.Sprintf("unsupported format %q (want pdf or png)", s)}
	}
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type of files in this format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "application/pdf"
}

// Filename builds the download name "{fullName}_{templateID}.pdf". An empty
// name becomes "cv". Path separators in the name are replaced so the result
// is always a single path element.
func Filename(fullName, templateID string, format Format) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "cv"
	}
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	return name + "_" + templateID + format.Extension()
}
