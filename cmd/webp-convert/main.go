package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/handiism/webp-converter/internal/config"
	"github.com/handiism/webp-converter/internal/convert"
	"github.com/handiism/webp-converter/internal/display"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one conversion batch and returns the process exit code.
// Per-file failures still exit 0; only pre-flight problems exit 1.
func run(args []string, stdout, stderr io.Writer) int {
	settings := config.DefaultSettings()
	if err := config.ParseFlags(settings, args, stdout); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Run 'webp-convert --help' for usage.")
		return 1
	}

	if err := settings.ValidateInputDir(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	printer := display.NewPrinter(stdout, settings.Verbose)
	if settings.LogFile != "" {
		if err := printer.OpenLog(settings.LogFile); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	defer printer.Close()

	printer.Banner(settings)

	manager := convert.NewManager(settings, printer.Event)
	if err := manager.Initialize(); err != nil {
		if errors.Is(err, convert.ErrNoImages) {
			fmt.Fprintln(stdout, "No images found in the input directory root")
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	summary, err := manager.StartConversions()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	printer.Summary(summary)
	return 0
}
