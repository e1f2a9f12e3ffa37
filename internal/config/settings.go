package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Quality and worker bounds.
const (
	MinQuality = 0
	MaxQuality = 100

	DefaultQuality = 80
	DefaultJobs    = 4
)

// Pre-flight validation errors. Any of these aborts the run before a single
// image is converted.
var (
	ErrNoInput      = errors.New("input directory is required")
	ErrNoOutput     = errors.New("output directory is required (-o/--output)")
	ErrQualityRange = errors.New("quality must be between 0 and 100")
	ErrJobsRange    = errors.New("jobs must be at least 1")
)

// Settings holds all run parameters.
//
// Settings are built once at startup (defaults, then an optional JSON file,
// then command-line flags), validated, and afterwards only read.
type Settings struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Encoding
	Quality int `json:"quality"` // 0-100
	Jobs    int `json:"jobs"`    // worker pool size

	// Display
	Verbose bool   `json:"verbose"`
	LogFile string `json:"log_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Quality: DefaultQuality,
		Jobs:    DefaultJobs,
	}
}

// Load reads settings from a JSON file.
//
// Values missing from the file keep their defaults. A file that does not
// exist is not an error; defaults are returned instead.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Validate checks value ranges and required fields.
//
// It does not touch the filesystem; see ValidateInputDir for the existence
// check of the input directory.
func (s *Settings) Validate() error {
	if s.InputDir == "" {
		return ErrNoInput
	}
	if s.OutputDir == "" {
		return ErrNoOutput
	}
	if s.Quality < MinQuality || s.Quality > MaxQuality {
		return ErrQualityRange
	}
	if s.Jobs < 1 {
		return ErrJobsRange
	}
	return nil
}

// ValidateInputDir reports an error when the input directory does not exist
// or is not a directory.
func (s *Settings) ValidateInputDir() error {
	fi, err := os.Stat(s.InputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input directory '%s' does not exist", s.InputDir)
		}
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("input path '%s' is not a directory", s.InputDir)
	}
	return nil
}
