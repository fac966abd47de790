package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-genie/internal/observability"
	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/types"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		template string
		out      string
		markdown bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the CV as a standalone HTML page or Markdown",
		Long:  "Renders the record with a template. Output goes to stdout unless --out is set; an .md output path implies --markdown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.loadRecord()
			if err != nil {
				return err
			}
			id := a.template(template)
			if strings.EqualFold(filepath.Ext(out), ".md") {
				markdown = true
			}

			var buf bytes.Buffer
			if markdown {
				buf.WriteString(rendering.Markdown(a.registry.Render(r, id)))
			} else if err := a.registry.WriteDocument(&buf, r, id); err != nil {
				return fmt.Errorf("failed to render: %w", err)
			}

			if out == "" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %s with %s\n", out, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Template id (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Write Markdown instead of HTML")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		template string
		style    string
		width    int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the CV in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.loadRecord()
			if err != nil {
				return err
			}

			opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
			if style == "auto" {
				opts = append(opts, glamour.WithAutoStyle())
			} else {
				opts = append(opts, glamour.WithStandardStyle(style))
			}
			renderer, err := glamour.NewTermRenderer(opts...)
			if err != nil {
				return fmt.Errorf("failed to create terminal renderer: %w", err)
			}

			text, err := renderer.Render(rendering.Markdown(a.registry.Render(r, a.template(template))))
			if err != nil {
				return fmt.Errorf("failed to render preview: %w", err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Template id (default from config)")
	cmd.Flags().StringVar(&style, "style", "auto", "Glamour style: auto, dark, light or notty")
	cmd.Flags().IntVar(&width, "width", 80, "Word wrap width")
	return cmd
}

func newTemplatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(a.registry.Templates(), a.template(""))
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print an overview of the record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.loadRecord()
			if err != nil {
				return err
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintRecordSummary(r)
			return nil
		},
	}
}

// recordOrDefault loads the record, or starts from an empty one when the
// file does not exist yet
func (a *app) recordOrDefault() (types.Record, error) {
	if _, err := os.Stat(a.recordPath); os.IsNotExist(err) {
		return types.DefaultRecord(), nil
	}
	return a.loadRecord()
}
