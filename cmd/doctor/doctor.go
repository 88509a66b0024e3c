// Package doctor provides the "pivotkit doctor" command for checking system health.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/klytics/pivotkit/internal/config"
)

// Check represents a single health check result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// NewCommand creates the "doctor" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check system health and dependencies",
		Long:  "Run diagnostic checks to verify pivotkit is properly configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runChecks()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(checks)
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			fmt.Println("pivotkit Doctor")
			fmt.Println("===============")
			fmt.Println()

			okCount, warnCount, errCount := 0, 0, 0
			for _, c := range checks {
				var icon string
				switch c.Status {
				case "ok":
					icon = green("✓")
					okCount++
				case "warning":
					icon = yellow("!")
					warnCount++
				case "error":
					icon = red("✗")
					errCount++
				}
				fmt.Printf("  %s %s: %s\n", icon, c.Name, c.Message)
			}

			fmt.Println()
			fmt.Printf("  %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

			if errCount > 0 {
				return fmt.Errorf("%d check(s) failed", errCount)
			}
			return nil
		},
	}
}

func runChecks() []Check {
	var checks []Check

	checks = append(checks, Check{
		Name:    "Go Runtime",
		Status:  "ok",
		Message: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	})

	home, _ := os.UserHomeDir()
	configDir := filepath.Join(home, ".pivotkit")
	if info, err := os.Stat(configDir); err == nil && info.IsDir() {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "ok",
			Message: configDir,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "warning",
			Message: fmt.Sprintf("%s not found — created on first 'pivotkit config set'", configDir),
		})
	}

	if _, err := os.Stat(config.Path()); err == nil {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "ok",
			Message: config.Path(),
		})
	} else {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "warning",
			Message: "Not found — defaults in effect",
		})
	}

	cfg, err := config.Load()
	if err != nil {
		checks = append(checks, Check{
			Name:    "Config Load",
			Status:  "error",
			Message: err.Error(),
		})
	} else {
		checks = append(checks, checkOutputDir(cfg.Output.Dir))
	}

	checks = append(checks, checkWorkbookEngine())

	return checks
}

// checkOutputDir verifies the configured output directory is writable.
func checkOutputDir(dir string) Check {
	if dir == "" {
		dir = "."
	}
	probe := filepath.Join(dir, ".pivotkit_write_probe")
	if err := os.WriteFile(probe, []byte("probe"), 0644); err != nil {
		return Check{
			Name:    "Output Directory",
			Status:  "error",
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	os.Remove(probe)
	return Check{
		Name:    "Output Directory",
		Status:  "ok",
		Message: fmt.Sprintf("%s is writable", dir),
	}
}

// checkWorkbookEngine exercises the xlsx library by round-tripping a tiny
// workbook in memory.
func checkWorkbookEngine() Check {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue("Sheet1", "A1", "probe"); err != nil {
		return Check{
			Name:    "Workbook Engine",
			Status:  "error",
			Message: err.Error(),
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return Check{
			Name:    "Workbook Engine",
			Status:  "error",
			Message: err.Error(),
		}
	}
	return Check{
		Name:    "Workbook Engine",
		Status:  "ok",
		Message: fmt.Sprintf("excelize OK (%d byte probe workbook)", buf.Len()),
	}
}
