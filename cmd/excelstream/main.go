// Package main provides the CLI entry point for excelstream.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vikramthyagarajan/excelstream/internal/config"
	"github.com/vikramthyagarajan/excelstream/internal/logging"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

// app carries the state shared by every command.
type app struct {
	envFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "excelstream",
		Short: "Read and write Excel workbooks against a sheet schema",
		Long: `excelstream validates workbook sheets against a schema, projects their
rows into JSON records and writes records back into new workbooks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file applied before reading settings")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text, json")

	rootCmd.AddCommand(
		newReadCmd(a),
		newWriteCmd(a),
		newValidateCmd(a),
		newInspectCmd(a),
		newInferCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

func (a *app) options() excelstream.Options {
	return excelstream.Options{
		Logger:              a.logger,
		MaxConcurrentSheets: a.cfg.Reader.MaxConcurrentSheets,
	}
}

func loadSchema(path string, debug bool) (schema.Config, error) {
	if path == "" {
		return schema.Config{}, fmt.Errorf("--schema is required")
	}
	cfg, err := schema.LoadFile(path)
	if err != nil {
		return schema.Config{}, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(w, string(data))
	return err
}
