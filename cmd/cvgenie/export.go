package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-genie/internal/builder"
	"github.com/jonathan/cv-genie/internal/export"
	"github.com/jonathan/cv-genie/internal/observability"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		template string
		format   string
		outDir   string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the CV as PDF or PNG",
		Long: `Export rasterizes the rendered CV with a headless browser. The file is
named {fullName}_{template}.pdf (or .png) inside --out. With --all every
template is exported concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = a.cfg.ExportFormat
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			r, err := a.loadRecord()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			templates := []string{a.template(template)}
			if all {
				templates = templates[:0]
				for _, info := range a.registry.Templates() {
					templates = append(templates, info.ID)
				}
			}

			rasterizer := a.newRasterizer(a.cfg, a.logger)
			results := make([]observability.ExportSummary, len(templates))

			var g errgroup.Group
			for i, id := range templates {
				g.Go(func() error {
					results[i] = observability.ExportSummary{Template: id}

					session := builder.NewSession(a.registry, r, a.logger)
					defer session.Close()
					session.SelectTemplate(id)

					res, err := session.Export(cmd.Context(), rasterizer, f)
					if err != nil {
						results[i].Err = err
						return fmt.Errorf("%s: %w", id, err)
					}
					path := filepath.Join(outDir, res.Filename)
					if err := os.WriteFile(path, res.Data, 0644); err != nil {
						results[i].Err = err
						return fmt.Errorf("%s: failed to write %s: %w", id, path, err)
					}
					results[i].Path = path
					results[i].Bytes = len(res.Data)
					a.logger.Debug("export written", zap.String("template", id), zap.String("path", path))
					return nil
				})
			}
			err = g.Wait()

			observability.NewPrinter(cmd.OutOrStdout()).PrintExports(results)
			return err
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Template id (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "pdf or png (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	cmd.Flags().BoolVar(&all, "all", false, "Export every template")
	return cmd
}
