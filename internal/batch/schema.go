// Package batch runs a YAML-defined list of report build jobs.
package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/klytics/pivotkit/internal/report"
)

// File represents a complete batch job file.
type File struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
	Jobs    []Job  `yaml:"jobs" json:"jobs"`
}

// Job is one report build.
type Job struct {
	ID        string                `yaml:"id" json:"id"`
	Mode      string                `yaml:"mode" json:"mode"` // static, update, live
	Input     string                `yaml:"input,omitempty" json:"input,omitempty"`
	Sheet     string                `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	Output    string                `yaml:"output,omitempty" json:"output,omitempty"`
	OnFailure string                `yaml:"on_failure,omitempty" json:"onFailure,omitempty"`
	Pivots    []report.PivotRequest `yaml:"pivots,omitempty" json:"pivots,omitempty"`
}

// Load reads and parses a batch job file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("job file not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read job file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a batch file from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid job YAML: %w", err)
	}

	if err := validate(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

func validate(f *File) error {
	if f.Name == "" {
		return fmt.Errorf("job file is missing a 'name' field")
	}

	if len(f.Jobs) == 0 {
		return fmt.Errorf("job file %q has no jobs defined", f.Name)
	}

	seen := make(map[string]bool)
	for i, job := range f.Jobs {
		if job.ID == "" {
			return fmt.Errorf("job %d is missing an 'id' field", i+1)
		}
		if seen[job.ID] {
			return fmt.Errorf("duplicate job ID %q — each job must have a unique ID", job.ID)
		}
		seen[job.ID] = true

		switch job.Mode {
		case "static", "live":
			if job.Output == "" {
				return fmt.Errorf("job %q is missing an 'output' field", job.ID)
			}
		case "update":
			if job.Input == "" {
				return fmt.Errorf("job %q needs an 'input' workbook to update", job.ID)
			}
		case "":
			return fmt.Errorf("job %q is missing a 'mode' field (static, update, or live)", job.ID)
		default:
			return fmt.Errorf("job %q has unknown mode %q — supported: static, update, live", job.ID, job.Mode)
		}
	}

	return nil
}
