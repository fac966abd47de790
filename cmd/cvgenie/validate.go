package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-genie/internal/schemas"
)

func newValidateCmd(a *app) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the record file's shape, and optionally a custom JSON Schema",
		Long: `Validate checks that the record file decodes. With --schema the document
is also checked against a user-supplied JSON Schema, for rules such as a
required name or email that cvgenie itself never enforces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := schemas.FormatFromPath(a.recordPath)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(a.recordPath)
			if err != nil {
				return fmt.Errorf("failed to read record file: %w", err)
			}
			if _, err := schemas.DecodeRecord(data, format); err != nil {
				return fmt.Errorf("%s: %w", a.recordPath, err)
			}

			if schemaPath != "" {
				schema, err := os.ReadFile(schemaPath)
				if err != nil {
					return fmt.Errorf("failed to read schema: %w", err)
				}
				doc, err := schemas.DocumentJSON(data, format)
				if err != nil {
					return err
				}
				if err := schemas.ValidateDocument(schemaPath, schema, doc); err != nil {
					return fmt.Errorf("%s: %w", a.recordPath, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", a.recordPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to an additional JSON Schema")
	return cmd
}
