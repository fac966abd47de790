// Package builder owns the editing state of one CV: the record, the chosen
// template, the export status and the user-facing notifications.
package builder

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/jonathan/cv-genie/internal/export"
	"github.com/jonathan/cv-genie/internal/rendering"
)

// ExportResult is a finished export file.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Export rasterizes the preview region of a frozen snapshot of the session.
// Edits made while the export runs do not affect its output. Success and
// failure are both recorded as notifications; the exporting flag is always
// cleared on return.
func (s *Session) Export(ctx context.Context, rasterizer export.Rasterizer, format export.Format) (*ExportResult, error) {
	s.mu.Lock()
	if s.exporting {
		s.mu.Unlock()
		return nil, ErrExportInProgress
	}
	s.exporting = true
	s.touchLocked(EventExport)
	record, tmpl := s.record, s.template
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.touchLocked(EventExport)
		s.mu.Unlock()
	}()

	region := findRegion(s.registry.Render(record, tmpl))
	if region == nil {
		s.fail("preview region not found", msgRegionMissing)
		return nil, &export.ExportError{Message: "preview region not found"}
	}

	title := record.FullName()
	var doc bytes.Buffer
	if err := rendering.WriteHTML(&doc, s.registry.Document(region, title)); err != nil {
		s.fail(err.Error(), msgExportFailed)
		return nil, &export.ExportError{Message: "failed to build document", Cause: err}
	}

	data, err := rasterizer.Rasterize(ctx, doc.Bytes(), format)
	if err != nil {
		s.fail(err.Error(), msgExportFailed)
		return nil, &export.ExportError{Message: "rasterization failed", Cause: err}
	}

	result := &ExportResult{
		Filename:    export.Filename(record.FullName(), tmpl, format),
		ContentType: format.ContentType(),
		Data:        data,
	}
	s.logger.Info("exported cv",
		zap.String("template", tmpl),
		zap.String("filename", result.Filename),
		zap.Int("bytes", len(data)),
	)

	s.mu.Lock()
	s.notifyLocked(LevelSuccess, "Success", msgExportSucceeded)
	s.mu.Unlock()
	return result, nil
}

func (s *Session) fail(reason, message string) {
	s.logger.Error("export failed", zap.String("reason", reason))
	s.mu.Lock()
	s.notifyLocked(LevelError, "Error", message)
	s.mu.Unlock()
}

// findRegion locates the element with the preview id inside a rendered tree.
func findRegion(tree *html.Node) *html.Node {
	if tree == nil {
		return nil
	}
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(tree)
	defer root.RemoveChild(tree)

	sel := goquery.NewDocumentFromNode(root).Find("#" + rendering.PreviewID)
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}
