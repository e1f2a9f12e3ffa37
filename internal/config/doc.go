// Package config provides configuration management for webp-converter.
//
// This package handles:
//   - Default run parameters (quality 80, 4 parallel jobs)
//   - Loading settings from a JSON file
//   - Command-line flag parsing with short and long aliases
//   - Pre-flight validation
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Quality: 80, Jobs: 4
//
// # Command Line
//
//	settings := config.DefaultSettings()
//	err := config.ParseFlags(settings, os.Args[1:], os.Stderr)
//	if errors.Is(err, config.ErrHelp) {
//	    os.Exit(0)
//	}
//
// Flags may come before or after the input directory:
//
//	webp-convert ./photos -o ./webp -q 90 -j 8
//	webp-convert -o ./webp ./photos
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/webp-convert.json")
//	// Missing file yields defaults
//
// A settings file uses the JSON field names of Settings:
//
//	{"output_dir": "./webp", "quality": 90, "jobs": 8}
//
// # Validation
//
// Validate checks ranges (quality 0-100, jobs >= 1) and required paths;
// ValidateInputDir checks that the input directory exists. Both run once,
// before any conversion starts.
package config
