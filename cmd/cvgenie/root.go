// Package main implements the cvgenie CLI for building, previewing and exporting CVs.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-genie/internal/config"
	"github.com/jonathan/cv-genie/internal/export"
	"github.com/jonathan/cv-genie/internal/observability"
	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/schemas"
	"github.com/jonathan/cv-genie/internal/types"
)

// app carries the state shared by every command of one invocation
type app struct {
	configPath string
	recordPath string
	verbose    bool

	cfg      config.Config
	logger   *zap.Logger
	registry *rendering.Registry

	// newRasterizer is replaced in tests so exports need no browser
	newRasterizer func(cfg config.Config, logger *zap.Logger) export.Rasterizer
}

func newApp() *app {
	return &app{
		logger:   zap.NewNop(),
		registry: rendering.DefaultRegistry(),
		newRasterizer: func(cfg config.Config, logger *zap.Logger) export.Rasterizer {
			return export.NewChromeRasterizer(cfg.ChromePath, cfg.Timeout(), logger)
		},
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(newApp())
}

func newRootCmdWith(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cvgenie",
		Short: "Build, preview and export CVs",
		Long: `cvgenie edits a structured CV record and renders it with one of several
visual templates. Records are JSON or YAML files; exports are PDF or PNG.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (.json, .yaml or .toml)")
	rootCmd.PersistentFlags().StringVarP(&a.recordPath, "file", "f", "", "Path to the CV record (default from config, else cv.json)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newInitCmd(a),
		newSetCmd(a),
		newAddItemCmd(a),
		newRemoveItemCmd(a),
		newRenderCmd(a),
		newPreviewCmd(a),
		newExportCmd(a),
		newWatchCmd(a),
		newEditCmd(a),
		newTemplatesCmd(a),
		newSummaryCmd(a),
		newValidateCmd(a),
	)
	return rootCmd
}

// setup resolves configuration and builds the logger before any command runs
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.recordPath == "" {
		a.recordPath = cfg.Record
	}
	a.logger.Debug("configuration loaded",
		zap.String("record", a.recordPath),
		zap.String("template", cfg.DefaultTemplate),
	)
	return nil
}

// template picks the flag value, falling back to the configured default
func (a *app) template(flag string) string {
	if flag == "" {
		flag = a.cfg.DefaultTemplate
	}
	return a.registry.ResolveID(flag)
}

func (a *app) loadRecord() (types.Record, error) {
	r, err := schemas.LoadRecord(a.recordPath)
	if err != nil {
		return types.Record{}, fmt.Errorf("failed to load record: %w", err)
	}
	return r, nil
}

func (a *app) saveRecord(r types.Record) error {
	if err := schemas.SaveRecord(a.recordPath, r); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	a.logger.Debug("record saved", zap.String("path", a.recordPath))
	return nil
}
