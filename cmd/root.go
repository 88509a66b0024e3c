// Package cmd contains all CLI commands for the pivotkit binary.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmdbatch "github.com/klytics/pivotkit/cmd/batch"
	"github.com/klytics/pivotkit/cmd/build"
	"github.com/klytics/pivotkit/cmd/completion"
	cmdconfig "github.com/klytics/pivotkit/cmd/config"
	"github.com/klytics/pivotkit/cmd/doctor"
	"github.com/klytics/pivotkit/cmd/inspect"
	"github.com/klytics/pivotkit/cmd/sample"
	cmdshell "github.com/klytics/pivotkit/cmd/shell"
	"github.com/klytics/pivotkit/cmd/version"
	cmdwatch "github.com/klytics/pivotkit/cmd/watch"
	"github.com/klytics/pivotkit/internal/shell"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pivotkit",
		Short: "Pivot summary workbooks with charts, from the terminal",
		Long: `pivotkit — pivot tables and charts for .xlsx workbooks.

Load tabular data (.csv, .json, .xlsx), compute group-by aggregations, and
write summary workbooks with charts. Three build modes: static (computed
cells), update (append to an existing workbook), and live (native Excel
PivotTable objects).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(build.NewCommand())
	rootCmd.AddCommand(sample.NewCommand())
	rootCmd.AddCommand(inspect.NewCommand())
	rootCmd.AddCommand(cmdbatch.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(doctor.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	shell.DefaultRunner = runForShell

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// runForShell executes a command line from the interactive shell against a
// fresh root command so flag state does not leak between invocations.
func runForShell(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
