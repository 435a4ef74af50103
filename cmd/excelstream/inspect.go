package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/output"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/parser"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		outputPath string
		pretty     bool
		formulas   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Dump the populated cells of a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := readWorkbook(args[0], formulas)
			if err != nil {
				return err
			}
			a.logger.Debug("workbook read", "book", wb.BookName, "sheets", len(wb.Sheets))

			data, err := output.WorkbookToJSON(wb, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), outputPath, data)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&formulas, "formulas", false, "Include cell formulas")
	return cmd
}

func readWorkbook(path string, includeFormulas bool) (*models.WorkbookData, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", excelstream.ErrFileNotFound, path)
		}
		return nil, err
	}
	defer src.Close()

	f, err := parser.Open(src)
	if err != nil {
		return nil, &excelstream.ParseError{Err: err}
	}
	defer f.Close()

	wb, err := parser.ReadWorkbook(f, includeFormulas)
	if err != nil {
		return nil, &excelstream.ParseError{Err: err}
	}
	wb.BookName = filepath.Base(path)
	return wb, nil
}
