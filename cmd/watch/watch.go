// Package watch provides the command that rebuilds reports on file changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klytics/pivotkit/internal/config"
	"github.com/klytics/pivotkit/internal/report"
	w "github.com/klytics/pivotkit/internal/watch"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		extensions []string
		recursive  bool
		mode       string
		outputDir  string
		debounce   int
	)

	cmd := &cobra.Command{
		Use:   "watch <directory> [directory...]",
		Short: "Rebuild reports when source data files change",
		Long: `Watches directories for new or modified data files and rebuilds the
configured report for each change. Generated reports carry a _report suffix
and are never picked up as inputs themselves.

Example:
  pivotkit watch ./data --mode static --output-dir ./reports`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch mode {
			case "static", "live":
			case "":
				mode = "static"
			default:
				return fmt.Errorf("unsupported watch mode %q — supported: static, live", mode)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			if outputDir == "" {
				outputDir = cfg.Output.Dir
			}
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("could not create output directory %s: %w", outputDir, err)
			}

			watcher, err := w.New(w.Config{
				Directories: args,
				Extensions:  extensions,
				Recursive:   recursive,
				Debounce:    debounce,
			})
			if err != nil {
				return err
			}

			watcher.Handler = func(path string) (string, error) {
				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				out := filepath.Join(outputDir, base+w.ReportSuffix)

				opts := report.Options{
					InputPath:   path,
					OutputPath:  out,
					ChartWidth:  cfg.Chart.Width,
					ChartHeight: cfg.Chart.Height,
					FillValue:   cfg.Pivot.FillValue,
					PivotStyle:  cfg.Pivot.Style,
				}

				var res *report.Result
				var err error
				if mode == "live" {
					res, err = report.BuildLive(opts)
				} else {
					res, err = report.BuildStatic(opts)
				}
				if err != nil {
					return "", err
				}
				return res.OutputPath, nil
			}

			fmt.Printf("Watching %d directory(ies), building %s reports into %s\n",
				len(args), mode, outputDir)
			fmt.Println("Press Ctrl+C to stop")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "File extensions to watch (default: .xlsx,.csv,.json)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch directories recursively")
	cmd.Flags().StringVar(&mode, "mode", "static", "Report mode to build: static or live")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for generated reports (default: config output.dir)")
	cmd.Flags().IntVar(&debounce, "debounce", 500, "Debounce interval in milliseconds")

	return cmd
}
