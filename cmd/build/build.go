// Package build provides the report build commands, one per mode.
package build

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/pivotkit/internal/config"
	"github.com/klytics/pivotkit/internal/output"
	"github.com/klytics/pivotkit/internal/report"
)

// NewCommand returns the build subcommand group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a pivot summary workbook with charts",
		Long: `Build a workbook containing the source data, pivot summaries, and charts.

Modes:
  static — pivots are computed here and written as plain cells; charts
           reference the written ranges (fixed once saved)
  update — append a pivot sheet and chart to an existing workbook
  live   — insert native Excel PivotTable objects that stay interactive,
           with charts over their destination ranges

Without --input, the built-in sample sales data set is used.`,
	}

	cmd.AddCommand(newModeCommand("static",
		"Write computed pivot tables and charts to a new workbook"))
	cmd.AddCommand(newModeCommand("update",
		"Append a pivot sheet and chart to an existing workbook"))
	cmd.AddCommand(newModeCommand("live",
		"Write native PivotTable objects and charts to a new workbook"))

	return cmd
}

func newModeCommand(mode, short string) *cobra.Command {
	var (
		input     string
		sheetName string
		out       string
		index     string
		column    string
		values    string
		agg       string
		chart     string
		title     string
	)

	cmd := &cobra.Command{
		Use:   mode,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			if mode == "update" && input == "" {
				return fmt.Errorf("--input is required — update mode modifies an existing workbook\n\nExample: pivotkit build update --input sales.xlsx")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}

			opts := report.Options{
				InputPath:   input,
				SheetName:   sheetName,
				OutputPath:  resolveOutput(out, mode, input, cfg.Output.Dir),
				ChartWidth:  cfg.Chart.Width,
				ChartHeight: cfg.Chart.Height,
				FillValue:   cfg.Pivot.FillValue,
				PivotStyle:  cfg.Pivot.Style,
			}

			if index != "" || values != "" {
				if index == "" || values == "" {
					return fmt.Errorf("--index and --values go together — both are needed to describe a pivot")
				}
				opts.Pivots = []report.PivotRequest{{
					Index:  index,
					Column: column,
					Values: values,
					Agg:    agg,
					Chart:  chart,
					Title:  title,
				}}
			}

			var res *report.Result
			switch mode {
			case "static":
				res, err = report.BuildStatic(opts)
			case "update":
				res, err = report.BuildUpdate(opts)
			case "live":
				res, err = report.BuildLive(opts)
			}
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.PrintJSON("build "+mode, res)
			}
			printResult(res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input data file (.csv, .json, .xlsx; default: sample data)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read from .xlsx inputs (default: first)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output .xlsx path")
	cmd.Flags().StringVar(&index, "index", "", "Pivot row grouping column")
	cmd.Flags().StringVar(&column, "column", "", "Pivot column grouping column (cross-tab)")
	cmd.Flags().StringVar(&values, "values", "", "Column to aggregate")
	cmd.Flags().StringVar(&agg, "agg", "", "Aggregation: sum, mean, count, min, max (default: sum)")
	cmd.Flags().StringVar(&chart, "chart", "", "Chart type: column, bar, pie, line, none (default: column)")
	cmd.Flags().StringVar(&title, "title", "", "Chart title override")

	return cmd
}

// resolveOutput fills in a default output path per mode. Update mode defaults
// to a sibling of the input so the original workbook is not overwritten.
func resolveOutput(out, mode, input, dir string) string {
	if out != "" {
		if !strings.HasSuffix(strings.ToLower(out), ".xlsx") {
			out += ".xlsx"
		}
		return out
	}

	switch mode {
	case "update":
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return base + "_pivot.xlsx"
	case "live":
		return filepath.Join(dir, "pivot_live.xlsx")
	default:
		return filepath.Join(dir, "pivot_static.xlsx")
	}
}

func printResult(res *report.Result) {
	bold := color.New(color.Bold)
	bold.Printf("Report generated → %s\n", res.OutputPath)
	fmt.Printf("  Data rows:    %d\n", res.DataRows)
	fmt.Printf("  Sheets:       %d\n", res.Sheets)
	fmt.Printf("  Charts:       %d\n", res.Charts)
	if res.PivotTables > 0 {
		fmt.Printf("  PivotTables:  %d\n", res.PivotTables)
	}
}
