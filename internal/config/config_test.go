package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output.Dir != "." {
		t.Errorf("output.dir = %q, want .", cfg.Output.Dir)
	}
	if cfg.Chart.Width != 720 || cfg.Chart.Height != 480 {
		t.Errorf("chart size = %dx%d, want 720x480", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Pivot.FillValue != 0 {
		t.Errorf("pivot.fill_value = %v, want 0", cfg.Pivot.FillValue)
	}
	if cfg.Pivot.Style != "PivotStyleMedium9" {
		t.Errorf("pivot.style = %q", cfg.Pivot.Style)
	}
	if cfg.Build.Mode != "static" {
		t.Errorf("build.mode = %q, want static", cfg.Build.Mode)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PIVOTKIT_CHART_WIDTH", "960")
	t.Setenv("PIVOTKIT_BUILD_MODE", "live")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Chart.Width != 960 {
		t.Errorf("chart.width = %d, want env override 960", cfg.Chart.Width)
	}
	if cfg.Build.Mode != "live" {
		t.Errorf("build.mode = %q, want env override live", cfg.Build.Mode)
	}
}

func TestSetGetReset(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := Load(); err != nil {
		t.Fatal(err)
	}

	if err := Set("output.dir", "reports"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := Get("output.dir"); got != "reports" {
		t.Errorf("Get = %q, want reports", got)
	}

	// Set persists to disk
	want := filepath.Join(home, ".pivotkit", "config.yaml")
	if Path() != want {
		t.Errorf("Path = %q, want %q", Path(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if err := Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if _, err := os.Stat(want); !os.IsNotExist(err) {
		t.Error("Reset should delete the config file")
	}
}

func TestShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(); err != nil {
		t.Fatal(err)
	}

	out := Show()
	for _, want := range []string{"Output", "Chart", "Pivot", "Build", "fill_value"} {
		if !strings.Contains(out, want) {
			t.Errorf("Show output missing %q:\n%s", want, out)
		}
	}
}
