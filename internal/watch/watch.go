// Package watch re-renders a record file whenever it changes on disk.
package watch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/schemas"
	"github.com/jonathan/cv-genie/internal/types"
)

// DefaultDebounce absorbs the burst of events an editor produces on save
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	RecordPath string
	// OutputPath receives the render; a .md extension selects Markdown,
	// anything else a standalone HTML page.
	OutputPath string
	Template   string
	Registry   *rendering.Registry
	Logger     *zap.Logger
	Debounce   time.Duration
	// OnRender is called after every render attempt, from the watch goroutine.
	OnRender func(Result)
}

// Result reports one render attempt.
type Result struct {
	Record types.Record
	Err    error
	At     time.Time
}

// Stats counts watcher activity.
type Stats struct {
	Renders  int
	Failures int
	Events   int
}

// Watcher renders RecordPath to OutputPath on start and after every change.
// A record that fails to decode is logged and the previous output is kept.
type Watcher struct {
	opts   Options
	logger *zap.Logger

	mu    sync.Mutex
	stats Stats
}

// New checks opts and fills in defaults.
func New(opts Options) (*Watcher, error) {
	if opts.RecordPath == "" {
		return nil, errors.New("watch: record path is required")
	}
	if opts.OutputPath == "" {
		return nil, errors.New("watch: output path is required")
	}
	if _, err := schemas.FormatFromPath(opts.RecordPath); err != nil {
		return nil, err
	}
	if opts.Registry == nil {
		opts.Registry = rendering.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		opts:   opts,
		logger: opts.Logger.With(zap.String("record", opts.RecordPath)),
	}, nil
}

// Stats returns a copy of the activity counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run renders once, then watches until ctx is cancelled. The record's
// directory is watched rather than the file, so editors that save by
// renaming a temp file over it are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.opts.RecordPath)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching", zap.String("output", w.opts.OutputPath), zap.Duration("debounce", w.opts.Debounce))

	w.RenderOnce()

	name := filepath.Base(w.opts.RecordPath)
	ticker := time.NewTicker(w.opts.Debounce / 2)
	defer ticker.Stop()

	var pendingSince time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.logger.Debug("change", zap.String("op", event.Op.String()))
			w.mu.Lock()
			w.stats.Events++
			w.mu.Unlock()
			pendingSince = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			if !pendingSince.IsZero() && time.Since(pendingSince) >= w.opts.Debounce {
				pendingSince = time.Time{}
				w.RenderOnce()
			}
		}
	}
}

// RenderOnce loads the record and writes the output. Failures are logged,
// counted and passed to OnRender; the returned Result carries the error.
func (w *Watcher) RenderOnce() Result {
	res := Result{At: time.Now()}
	res.Record, res.Err = w.render()

	w.mu.Lock()
	if res.Err != nil {
		w.stats.Failures++
	} else {
		w.stats.Renders++
	}
	w.mu.Unlock()

	if res.Err != nil {
		w.logger.Error("render failed; keeping previous output", zap.Error(res.Err))
	} else {
		w.logger.Info("rendered", zap.String("output", w.opts.OutputPath))
	}
	if w.opts.OnRender != nil {
		w.opts.OnRender(res)
	}
	return res
}

func (w *Watcher) render() (types.Record, error) {
	record, err := schemas.LoadRecord(w.opts.RecordPath)
	if err != nil {
		return types.Record{}, err
	}

	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(w.opts.OutputPath), ".md") {
		buf.WriteString(rendering.Markdown(w.opts.Registry.Render(record, w.opts.Template)))
	} else if err := w.opts.Registry.WriteDocument(&buf, record, w.opts.Template); err != nil {
		return types.Record{}, err
	}

	if err := writeFileAtomic(w.opts.OutputPath, buf.Bytes()); err != nil {
		return types.Record{}, err
	}
	return record, nil
}

// writeFileAtomic replaces path so a browser reloading it never sees a
// partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace output: %w", err)
	}
	return nil
}
