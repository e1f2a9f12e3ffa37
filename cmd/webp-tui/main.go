package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/handiism/webp-converter/internal/config"
	"github.com/handiism/webp-converter/internal/tui"
)

func main() {
	// Flags only prefill the form; a missing input directory is entered in the UI.
	settings := config.DefaultSettings()
	if err := config.ParseFlags(settings, os.Args[1:], os.Stdout); err != nil {
		switch {
		case errors.Is(err, config.ErrHelp):
			return
		case !errors.Is(err, config.ErrNoInput):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
