package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.Contains(t, names, RecordSchema)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := Read(name)
			require.NoError(t, err, "should be able to read schema file")

			var v map[string]any
			require.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON: %s", name)
			assert.Contains(t, v, "$schema")
			assert.Equal(t, "object", v["type"])
		})
	}
}

func TestRecordSchema_ListsEverySection(t *testing.T) {
	data, err := Read(RecordSchema)
	require.NoError(t, err)

	var v struct {
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &v))

	for _, section := range []string{
		"personalInfo", "contactInfo", "professionalSummary", "workExperience",
		"education", "skills", "certifications", "languages", "projects",
	} {
		assert.Contains(t, v.Properties, section)
	}
}

func TestRead_Unknown(t *testing.T) {
	_, err := Read("missing.schema.json")
	assert.Error(t, err)
}
