package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-genie/internal/tui"
)

func newEditCmd(a *app) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the CV in an interactive terminal editor",
		Long:  "Opens the record in a three-pane editor with a live preview. ctrl+s saves, q quits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.recordOrDefault()
			if err != nil {
				return err
			}

			model := tui.NewModel(r, a.recordPath, a.registry, a.template(template))
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("editor failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Template id (default from config)")
	return cmd
}
