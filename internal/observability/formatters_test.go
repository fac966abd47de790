package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/types"
)

func TestPrintRecordSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	skills := make(types.List, 0, 7)
	for _, name := range []string{"Go", "Rust", "SQL", "Bash", "C", "Lua", "Zig"} {
		skills = append(skills, types.Fields{types.FieldName: name})
	}
	r := types.DefaultRecord().
		With(types.SectionPersonalInfo, types.Object{types.FieldFullName: "Ada Lovelace", types.FieldJobTitle: "Analyst"}).
		With(types.SectionContactInfo, types.Object{types.FieldEmail: "ada@example.com", types.FieldGitHub: "ada"}).
		With(types.SectionWorkExperience, types.List{{types.FieldCompany: "Engines Ltd"}}).
		With(types.SectionSkills, skills)

	p.PrintRecordSummary(r)
	output := buf.String()

	assert.Contains(t, output, "CV SUMMARY")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "Analyst")
	assert.Contains(t, output, "email, github")
	assert.Contains(t, output, "workExperience: 1")
	assert.Contains(t, output, "Engines Ltd")
	assert.Contains(t, output, "skills: 7")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "education")
}

func TestPrintRecordSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecordSummary(types.DefaultRecord())

	assert.Contains(t, buf.String(), "(no name)")
	assert.NotContains(t, buf.String(), "Contact:")
}

func TestPrintTemplates(t *testing.T) {
	var buf bytes.Buffer
	reg := rendering.DefaultRegistry()
	NewPrinter(&buf).PrintTemplates(reg.Templates(), reg.DefaultID())

	output := buf.String()
	assert.Contains(t, output, "* professional")
	assert.Contains(t, output, "  gradient")
	assert.Contains(t, output, "Simple and elegant")
}

func TestPrintExports(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExports([]ExportSummary{
		{Template: "professional", Path: "out/cv_professional.pdf", Bytes: 1024},
		{Template: "gradient", Err: errors.New("browser crashed")},
	})

	output := buf.String()
	assert.Contains(t, output, "✓ professional")
	assert.Contains(t, output, "✗ gradient")
	assert.Contains(t, output, "browser crashed")
	assert.Contains(t, output, "1 written, 1 failed")
}

func TestPrintExports_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExports(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100)+"\n"+strings.Repeat("日本", 40))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, runewidth.StringWidth(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
	assert.True(t, logger.Core().Enabled(1))

	logger, err = NewLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}
