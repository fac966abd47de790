package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-genie/internal/editing"
	"github.com/jonathan/cv-genie/internal/types"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty CV record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.recordPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.recordPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", a.recordPath, err)
			}
			if err := a.saveRecord(types.DefaultRecord()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.recordPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing record")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	var (
		index   int
		rawJSON bool
	)

	cmd := &cobra.Command{
		Use:   "set <section> [field] <value>",
		Short: "Set a section, or one field of a section or item",
		Long: `Set updates the record in place.

  cvgenie set professionalSummary "Backend engineer"
  cvgenie set personalInfo fullName "Ada Lovelace"
  cvgenie set workExperience company "Acme" --index 0
  cvgenie set skills '[{"name":"Go","level":"Expert"}]' --json`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}
			field, raw := "", args[len(args)-1]
			if len(args) == 3 {
				field = args[1]
			}

			var value types.Value = types.Scalar(raw)
			if rawJSON {
				if value, err = types.ParseValue([]byte(raw)); err != nil {
					return fmt.Errorf("invalid JSON value: %w", err)
				}
			}

			var at *int
			if cmd.Flags().Changed("index") {
				at = editing.At(index)
			}

			r, err := a.loadRecord()
			if err != nil {
				return err
			}
			updated := editing.Apply(r, editing.Edit{Section: section, Index: at, Field: field, Value: value})
			if updated.Equal(r) {
				fmt.Fprintln(cmd.OutOrStdout(), "No change")
				return nil
			}
			if err := a.saveRecord(updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", section)
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "Item index within a list section")
	cmd.Flags().BoolVar(&rawJSON, "json", false, "Parse the value as JSON (text, object or list of objects)")
	return cmd
}

func newAddItemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-item <section>",
		Short: "Append an empty item to a list section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}
			r, err := a.loadRecord()
			if err != nil {
				return err
			}
			updated := editing.AddItem(r, section)
			if updated.Equal(r) {
				return fmt.Errorf("%s does not hold a list", section)
			}
			if err := a.saveRecord(updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s item #%d\n", section, len(updated.Items(section))-1)
			return nil
		},
	}
}

func newRemoveItemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item <section> <index>",
		Short: "Remove an item from a list section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be an integer: %q", args[1])
			}
			r, err := a.loadRecord()
			if err != nil {
				return err
			}
			updated := editing.RemoveItem(r, section, index)
			if updated.Equal(r) {
				fmt.Fprintln(cmd.OutOrStdout(), "No change")
				return nil
			}
			if err := a.saveRecord(updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s item #%d\n", section, index)
			return nil
		},
	}
}

// parseSection rejects unknown names at the command line
func parseSection(name string) (types.SectionID, error) {
	id, ok := types.ParseSectionID(name)
	if !ok {
		return 0, fmt.Errorf("unknown section %q", name)
	}
	return id, nil
}
