package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/output"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/parser"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

func newInferCmd(a *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "infer [input.xlsx]",
		Short: "Draft a TOML schema from a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := readWorkbook(args[0], false)
			if err != nil {
				return err
			}

			cfg := inferSchema(wb, parser.DefaultTableParams())
			for _, s := range wb.Sheets {
				if _, ok := cfg.FindSheet(s.Name); !ok {
					a.logger.Warn("no table found, sheet skipped", "sheet", s.Name)
				}
			}

			data, err := output.SchemaToTOML(cfg)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), outputPath, data)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

// inferSchema builds one sheet schema per sheet that holds a table, taking
// the first row of the table as the header row.
func inferSchema(wb *models.WorkbookData, params parser.TableDetectionParams) schema.Config {
	var cfg schema.Config
	for _, sheet := range wb.Sheets {
		headerRow := parser.DetectHeaderRow(sheet, params)
		if headerRow == 0 {
			continue
		}
		row, _ := sheet.Row(headerRow)

		s := schema.SheetSchema{
			Name: sheet.Name,
			Key:  slugify(sheet.Name),
			Rows: schema.RowSchema{HeaderRow: schema.IntPtr(headerRow)},
		}
		used := make(map[string]bool)
		for _, c := range row.Cells {
			name := parser.HeaderText(c)
			if name == "" {
				continue
			}
			key := slugify(name)
			for n := 2; used[key]; n++ {
				key = slugify(name) + "_" + strconv.Itoa(n)
			}
			used[key] = true
			s.Rows.AllowedHeaders = append(s.Rows.AllowedHeaders, schema.HeaderSchema{Name: name, Key: key})
		}
		cfg.Sheets = append(cfg.Sheets, s)
	}
	return cfg
}

// slugify lowercases s and joins its letter and digit runs with "_".
func slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "column"
	}
	return strings.Join(fields, "_")
}
