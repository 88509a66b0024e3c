// Package batch provides the command that runs a YAML job file of report builds.
package batch

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/pivotkit/internal/batch"
	"github.com/klytics/pivotkit/internal/config"
	"github.com/klytics/pivotkit/internal/output"
	"github.com/klytics/pivotkit/internal/report"
)

// NewCommand returns the batch subcommand.
func NewCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "batch <jobs.yaml>",
		Short: "Run a YAML job file of report builds",
		Long: `Runs every job in a YAML job file sequentially.

Job file format:
  name: quarterly-reports
  version: "1"
  jobs:
    - id: q1
      mode: static          # static | update | live
      input: data/q1.xlsx   # omit to use the sample data
      output: out/q1.xlsx
      on_failure: skip
      pivots:
        - index: Region
          column: Product
          values: Sales
          agg: sum
          chart: column`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			verboseFlag, _ := cmd.Flags().GetBool("verbose")

			f, err := batch.Load(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}

			runner := &batch.Runner{
				Base: report.Options{
					ChartWidth:  cfg.Chart.Width,
					ChartHeight: cfg.Chart.Height,
					FillValue:   cfg.Pivot.FillValue,
					PivotStyle:  cfg.Pivot.Style,
				},
				Verbose: verboseFlag,
				DryRun:  dryRun,
			}

			results, runErr := runner.Run(cmd.Context(), f)

			if jsonFlag {
				if err := output.PrintJSON("batch", results); err != nil {
					return err
				}
				return runErr
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			for _, r := range results {
				switch r.Status {
				case "ok":
					fmt.Printf("  %s %s → %s\n", green("✓"), r.ID, r.Output)
				case "dry-run":
					fmt.Printf("  %s %s: %s\n", yellow("~"), r.ID, r.Output)
				case "skipped":
					fmt.Printf("  %s %s: %s (skipped)\n", yellow("!"), r.ID, r.Error)
				default:
					fmt.Printf("  %s %s: %s\n", red("✗"), r.ID, r.Error)
				}
			}

			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and list jobs without building anything")

	return cmd
}
