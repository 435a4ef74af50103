package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/output"
)

func newWriteCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		dataPath   string
		outputPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write JSON records into a new workbook",
		Long: `write reads records grouped by sheet key, e.g. {"sheet1": [{"name": "A"}]},
and writes them into a new workbook laid out by the schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSchema(schemaPath, debug)
			if err != nil {
				return err
			}
			if outputPath == "" {
				return fmt.Errorf("--output is required")
			}

			raw, err := os.ReadFile(dataPath)
			if err != nil {
				return fmt.Errorf("failed to read data: %w", err)
			}
			records, err := output.DecodeRecords(raw)
			if err != nil {
				return fmt.Errorf("invalid data: %w", err)
			}

			ctx := cmd.Context()
			w := excelstream.NewWriter(cfg, a.options())

			keys := make([]string, 0, len(records))
			for k := range records {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, key := range keys {
				for _, rec := range records[key] {
					if err := w.AddData(ctx, key, rec); err != nil {
						return err
					}
				}
			}

			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			if err := w.SaveTo(ctx, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			stats := w.Stats()
			a.logger.Info("workbook written", "path", outputPath, "rows", stats.Rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (.json or .toml)")
	cmd.Flags().StringVar(&dataPath, "data", "", "JSON records grouped by sheet key")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log writer diagnostics")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
