package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		mode       string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a schema file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var m schema.Mode
			switch mode {
			case "read":
				m = schema.ModeRead
			case "write":
				m = schema.ModeWrite
			default:
				return fmt.Errorf("invalid mode: %s (must be read or write)", mode)
			}

			cfg, err := loadSchema(schemaPath, false)
			if err != nil {
				return err
			}
			if err := cfg.Validate(m); err != nil {
				return err
			}

			a.logger.Debug("schema valid", "path", schemaPath, "sheets", len(cfg.Sheets))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sheets)\n", schemaPath, len(cfg.Sheets))
			return err
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (.json or .toml)")
	cmd.Flags().StringVar(&mode, "mode", "read", "Pipeline the schema is used with: read, write")
	return cmd
}
