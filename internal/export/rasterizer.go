// Package export turns rendered CV documents into downloadable files.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single rasterization.
const DefaultTimeout = 30 * time.Second

// A4 paper size in inches
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// Rasterizer turns a standalone HTML document into file bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, document []byte, format Format) ([]byte, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(ctx context.Context, document []byte, format Format) ([]byte, error)

// Rasterize calls f.
func (f RasterizerFunc) Rasterize(ctx context.Context, document []byte, format Format) ([]byte, error) {
	return f(ctx, document, format)
}

// ChromeRasterizer prints documents with a headless Chrome/Chromium.
// Each call starts its own browser; nothing is shared between calls.
type ChromeRasterizer struct {
	// ExecPath overrides the browser binary. Empty means search PATH.
	ExecPath string
	// Timeout bounds one call. Zero means DefaultTimeout.
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewChromeRasterizer creates a rasterizer using the given browser binary.
func NewChromeRasterizer(execPath string, timeout time.Duration, logger *zap.Logger) *ChromeRasterizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeRasterizer{ExecPath: execPath, Timeout: timeout, Logger: logger}
}

// Rasterize loads document into a blank page and prints it. PDF output is A4
// with backgrounds; PNG output is a full-page screenshot.
func (c *ChromeRasterizer) Rasterize(ctx context.Context, document []byte, format Format) ([]byte, error) {
	if format != FormatPDF && format != FormatPNG {
		return nil, &ExportError{Message: fmt.Sprintf("unsupported format %q", format)}
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1240, 1754),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	logger.Debug("rasterizing document",
		zap.String("format", string(format)),
		zap.Int("bytes", len(document)),
	)

	var out []byte
	actions := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(document)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	switch format {
	case FormatPDF:
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			out = data
			return nil
		}))
	case FormatPNG:
		actions = append(actions, chromedp.FullScreenshot(&out, 100))
	}

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, &ExportError{Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("rasterized document",
		zap.String("format", string(format)),
		zap.Int("bytes", len(out)),
	)
	return out, nil
}
