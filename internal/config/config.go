// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Output struct {
		Dir   string `mapstructure:"dir"`
		Color bool   `mapstructure:"color"`
	} `mapstructure:"output"`
	Chart struct {
		Width  uint `mapstructure:"width"`
		Height uint `mapstructure:"height"`
	} `mapstructure:"chart"`
	Pivot struct {
		FillValue float64 `mapstructure:"fill_value"`
		Style     string  `mapstructure:"style"`
	} `mapstructure:"pivot"`
	Build struct {
		Mode string `mapstructure:"mode"`
	} `mapstructure:"build"`
}

// Load reads the configuration from ~/.pivotkit/config.yaml and environment
// variables prefixed PIVOTKIT.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	setDefaults()

	viper.SetEnvPrefix("PIVOTKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Missing config file is fine; defaults apply
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.color", true)
	viper.SetDefault("chart.width", 720)
	viper.SetDefault("chart.height", 480)
	viper.SetDefault("pivot.fill_value", 0.0)
	viper.SetDefault("pivot.style", "PivotStyleMedium9")
	viper.SetDefault("build.mode", "static")
}

// Set sets a config value and saves it to disk.
func Set(key, value string) error {
	viper.Set(key, value)
	return save()
}

// Get retrieves a config value as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// Reset deletes the config file and restores defaults.
func Reset() error {
	if err := os.Remove(Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete config: %w", err)
	}
	setDefaults()
	return nil
}

func save() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(Path()); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pivotkit"
	}
	return filepath.Join(home, ".pivotkit")
}

// Show returns a formatted string of the current configuration.
func Show() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config: %s\n\n", Path()))

	sb.WriteString("Output\n")
	sb.WriteString(fmt.Sprintf("  dir:        %s\n", viper.GetString("output.dir")))
	sb.WriteString(fmt.Sprintf("  color:      %v\n", viper.GetBool("output.color")))
	sb.WriteString("\nChart\n")
	sb.WriteString(fmt.Sprintf("  width:      %d\n", viper.GetUint("chart.width")))
	sb.WriteString(fmt.Sprintf("  height:     %d\n", viper.GetUint("chart.height")))
	sb.WriteString("\nPivot\n")
	sb.WriteString(fmt.Sprintf("  fill_value: %v\n", viper.GetFloat64("pivot.fill_value")))
	sb.WriteString(fmt.Sprintf("  style:      %s\n", viper.GetString("pivot.style")))
	sb.WriteString("\nBuild\n")
	sb.WriteString(fmt.Sprintf("  mode:       %s\n", viper.GetString("build.mode")))

	return sb.String()
}
