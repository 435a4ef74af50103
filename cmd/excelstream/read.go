package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/output"
)

func newReadCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		outputPath string
		pretty     bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "read [input.xlsx]",
		Short: "Project workbook rows into JSON records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSchema(schemaPath, debug)
			if err != nil {
				return err
			}

			r, err := excelstream.OpenFile(args[0], cfg, a.options())
			if err != nil {
				return err
			}

			var mu sync.Mutex
			recs := make(output.Records)
			err = r.ForEachRow(cmd.Context(), func(_ context.Context, rec models.Record, row int, key string) error {
				mu.Lock()
				defer mu.Unlock()
				recs[key] = append(recs[key], output.RecordRow{Row: row, Record: rec})
				return nil
			})
			if err != nil {
				return fmt.Errorf("read failed: %w", err)
			}

			data, err := output.ToJSON(recs, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), outputPath, data)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (.json or .toml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log reader diagnostics")
	return cmd
}
