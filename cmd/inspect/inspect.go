// Package inspect provides the command for examining workbook contents.
package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/pivotkit/internal/dataset"
	"github.com/klytics/pivotkit/internal/formats/xlsx"
	"github.com/klytics/pivotkit/internal/pivot"
)

// NewCommand returns the inspect subcommand.
func NewCommand() *cobra.Command {
	var (
		sheetName string
		csvOutput bool
		summary   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file.xlsx>",
		Short: "Show the contents of a workbook",
		Long:  "Reads an .xlsx file and prints its data. Supports JSON, CSV, pretty tables, and per-column aggregate summaries. Pass '-' to read from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			var wb *xlsx.Workbook
			var err error

			if len(args) == 0 || args[0] == "-" {
				data, readErr := io.ReadAll(os.Stdin)
				if readErr != nil {
					return fmt.Errorf("could not read from stdin: %w", readErr)
				}
				if len(data) == 0 {
					return fmt.Errorf("no input provided — pass an .xlsx file path or pipe data to stdin")
				}
				wb, err = xlsx.ReadBytes(data)
			} else {
				filePath := args[0]
				if !strings.HasSuffix(strings.ToLower(filePath), ".xlsx") {
					return fmt.Errorf("expected an .xlsx file, got %q — use 'pivotkit inspect <file.xlsx>'", filePath)
				}
				wb, err = xlsx.ReadFile(filePath)
			}
			if err != nil {
				return err
			}

			// Filter to specific sheet if requested
			if sheetName != "" {
				sheet, err := wb.GetSheet(sheetName)
				if err != nil {
					return err
				}
				wb = &xlsx.Workbook{Sheets: []xlsx.Sheet{*sheet}}
			}

			if summary {
				return printSummary(wb, jsonFlag)
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(wb.Sheets)
			}

			if csvOutput {
				for _, sheet := range wb.Sheets {
					if len(wb.Sheets) > 1 {
						fmt.Fprintf(os.Stderr, "--- %s ---\n", sheet.Name)
					}
					fmt.Print(sheet.ToCSV())
				}
				return nil
			}

			return printPretty(wb)
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Show only the named sheet")
	cmd.Flags().BoolVar(&csvOutput, "csv", false, "Output as CSV")
	cmd.Flags().BoolVar(&summary, "summary", false, "Show per-column aggregates instead of cell data")

	return cmd
}

func printSummary(wb *xlsx.Workbook, jsonFlag bool) error {
	type sheetSummary struct {
		Sheet string              `json:"sheet"`
		Rows  int                 `json:"rows"`
		Stats []pivot.ColumnStats `json:"stats"`
	}

	var summaries []sheetSummary
	for i := range wb.Sheets {
		s := &wb.Sheets[i]
		ds, err := dataset.FromSheet(s, s.Name)
		if err != nil {
			continue // empty sheet, nothing to summarize
		}
		summaries = append(summaries, sheetSummary{
			Sheet: s.Name,
			Rows:  ds.Len(),
			Stats: pivot.Summary(ds),
		})
	}

	if jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	headerStyle := color.New(color.Bold, color.FgCyan)
	for _, s := range summaries {
		headerStyle.Printf("Sheet: %s (%d rows)\n", s.Sheet, s.Rows)
		if len(s.Stats) == 0 {
			fmt.Println("  (no numeric columns)")
			continue
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  COLUMN\tCOUNT\tSUM\tMEAN\tMIN\tMAX")
		for _, cs := range s.Stats {
			fmt.Fprintf(w, "  %s\t%d\t%s\t%s\t%s\t%s\n",
				cs.Column, cs.Count,
				pivot.FormatNumber(cs.Sum), pivot.FormatNumber(cs.Mean),
				pivot.FormatNumber(cs.Min), pivot.FormatNumber(cs.Max))
		}
		w.Flush()
		fmt.Println()
	}
	return nil
}

func printPretty(wb *xlsx.Workbook) error {
	headerStyle := color.New(color.Bold, color.FgCyan)
	dim := color.New(color.FgHiBlack)

	for _, sheet := range wb.Sheets {
		headerStyle.Printf("Sheet: %s\n", sheet.Name)

		if len(sheet.Rows) == 0 {
			dim.Println("  (empty)")
			continue
		}

		// Calculate column widths
		colWidths := make([]int, 0)
		for _, row := range sheet.Rows {
			for j, cell := range row {
				for len(colWidths) <= j {
					colWidths = append(colWidths, 0)
				}
				if len(cell) > colWidths[j] {
					colWidths[j] = len(cell)
				}
			}
		}
		for i := range colWidths {
			if colWidths[i] > 40 {
				colWidths[i] = 40
			}
			if colWidths[i] < 3 {
				colWidths[i] = 3
			}
		}

		printRow(sheet.Rows[0], colWidths, color.New(color.Bold))
		dim.Print("  ")
		for j, w := range colWidths {
			if j > 0 {
				dim.Print("+-")
			}
			dim.Print(strings.Repeat("-", w+1))
		}
		dim.Println()

		for i := 1; i < len(sheet.Rows); i++ {
			printRow(sheet.Rows[i], colWidths, nil)
		}

		dim.Printf("  (%d rows)\n\n", len(sheet.Rows)-1)
	}

	return nil
}

func printRow(row []string, colWidths []int, style *color.Color) {
	fmt.Print("  ")
	for j := range colWidths {
		if j > 0 {
			fmt.Print("| ")
		}
		cell := ""
		if j < len(row) {
			cell = row[j]
		}
		if len(cell) > colWidths[j] {
			cell = cell[:colWidths[j]-1] + "~"
		}
		padded := cell + strings.Repeat(" ", colWidths[j]-len(cell)+1)
		if style != nil {
			style.Print(padded)
		} else {
			fmt.Print(padded)
		}
	}
	fmt.Println()
}
