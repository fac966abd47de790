// Package schemas holds the JSON Schema documents shipped with cvgenie.
package schemas

import (
	"embed"
	"io/fs"
)

//go:embed *.schema.json
var files embed.FS

// RecordSchema is the schema for CV record documents
const RecordSchema = "cv_record.schema.json"

// Read returns the contents of a schema file by name.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files.
func Names() ([]string, error) {
	return fs.Glob(files, "*.schema.json")
}
