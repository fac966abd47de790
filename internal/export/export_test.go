// Package export turns rendered CV documents into downloadable files.
package export

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		template string
		format   Format
		want     string
	}{
		{"named pdf", "Jane Doe", "professional", FormatPDF, "Jane Doe_professional.pdf"},
		{"empty name", "", "gradient", FormatPDF, "cv_gradient.pdf"},
		{"blank name", "   ", "minimalist", FormatPDF, "cv_minimalist.pdf"},
		{"png", "Jane", "minimalist", FormatPNG, "Jane_minimalist.png"},
		{"separators", "a/b\\c", "professional", FormatPDF, "a-b-c_professional.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.fullName, tt.template, tt.format))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, "image/png", f.ContentType())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())

	_, err = ParseFormat("docx")
	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Contains(t, err.Error(), "docx")
}

func TestExportError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ExportError{Message: "browser rendering failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "export error: browser rendering failed: boom", err.Error())
	assert.Equal(t, "export error: nope", (&ExportError{Message: "nope"}).Error())
}

func TestRasterizerFunc(t *testing.T) {
	var got []byte
	r := RasterizerFunc(func(_ context.Context, doc []byte, format Format) ([]byte, error) {
		got = doc
		return []byte(format), nil
	})

	out, err := r.Rasterize(context.Background(), []byte("<html></html>"), FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), out)
	assert.Equal(t, []byte("<html></html>"), got)
}

func TestChromeRasterizer_RejectsUnknownFormat(t *testing.T) {
	c := NewChromeRasterizer("", time.Second, nil)
	_, err := c.Rasterize(context.Background(), []byte("<html></html>"), Format("gif"))
	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
}

func findChrome() string {
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

func TestChromeRasterizer_PDF(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	path := findChrome()
	if path == "" {
		t.Skip("no Chrome/Chromium on PATH")
	}

	c := NewChromeRasterizer(path, 30*time.Second, nil)
	doc := []byte(`<!DOCTYPE html><html><body><div id="cv-preview"><h1>Ada</h1></div></body></html>`)

	out, err := c.Rasterize(context.Background(), doc, FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	out, err = c.Rasterize(context.Background(), doc, FormatPNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))
}
