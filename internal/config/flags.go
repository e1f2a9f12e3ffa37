package config

// CLI flag parsing and help text. Every option has a short and a long form;
// the positional input directory may appear anywhere on the command line.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Version is shown by --version; override at build time with
// -ldflags "-X github.com/handiism/webp-converter/internal/config.Version=...".
var Version = "1.0.0-dev"

// ErrHelp is returned by ParseFlags after --help or --version output has been
// written. Callers should exit successfully.
var ErrHelp = errors.New("help requested")

// cliFlags holds flags that are not Settings fields.
type cliFlags struct {
	configPath  string
	showVersion bool
	showHelp    bool
}

// ParseFlags parses args (without the program name) into settings.
//
// When -c/--config is given, the JSON file is loaded first and the other
// flags are applied on top of it, so the command line always wins.
// Help and version text are written to out.
func ParseFlags(settings *Settings, args []string, out io.Writer) error {
	var cli cliFlags

	// First pass only looks for --config so file values can become flag defaults.
	if path := findConfigFlag(args); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		*settings = *loaded
	}

	fs := flag.NewFlagSet("webp-convert", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { printUsage(out) }

	fs.StringVar(&settings.OutputDir, "output", settings.OutputDir, "Output directory for WebP files")
	fs.StringVar(&settings.OutputDir, "o", settings.OutputDir, "Same as --output")
	fs.IntVar(&settings.Quality, "quality", settings.Quality, "WebP quality (0-100)")
	fs.IntVar(&settings.Quality, "q", settings.Quality, "Same as --quality")
	fs.IntVar(&settings.Jobs, "jobs", settings.Jobs, "Number of parallel jobs")
	fs.IntVar(&settings.Jobs, "j", settings.Jobs, "Same as --jobs")
	fs.BoolVar(&settings.Verbose, "verbose", settings.Verbose, "Verbose output")
	fs.BoolVar(&settings.Verbose, "v", settings.Verbose, "Same as --verbose")
	fs.StringVar(&settings.LogFile, "log", settings.LogFile, "Append logs to file")
	fs.StringVar(&settings.LogFile, "l", settings.LogFile, "Same as --log")
	fs.StringVar(&cli.configPath, "config", "", "JSON settings file")
	fs.StringVar(&cli.configPath, "c", "", "Same as --config")
	fs.BoolVar(&cli.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&cli.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&cli.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&cli.showHelp, "h", false, "Same as --help")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrHelp
		}
		return err
	}

	if cli.showHelp {
		printUsage(out)
		return ErrHelp
	}
	if cli.showVersion {
		fmt.Fprintln(out, "webp-convert v"+Version)
		return ErrHelp
	}

	switch len(positional) {
	case 0:
		if settings.InputDir == "" {
			return ErrNoInput
		}
	case 1:
		settings.InputDir = positional[0]
	default:
		return fmt.Errorf("expected exactly one input directory, got %d: %s",
			len(positional), strings.Join(positional, " "))
	}
	return nil
}

// parseInterleaved parses args with fs, collecting positional arguments that
// appear between flags. The flag package stops at the first non-flag argument;
// this keeps parsing after it.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// "--" is consumed by Parse; everything after it is positional.
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// findConfigFlag scans args for -c/--config without a full parse.
func findConfigFlag(args []string) string {
	for i, a := range args {
		if a == "--" {
			return ""
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || (name != "c" && name != "config") {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// printUsage writes the help text to out.
func printUsage(out io.Writer) {
	const col1 = 26 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "webp-convert v" + Version + " - batch convert images to WebP"},
		{"", ""},
		{"  webp-convert [OPTIONS] <input_dir>", ""},
		{"", ""},
		{"Options", ""},
		{"  -o, --output <dir>", "Output directory for WebP files (required)"},
		{"  -q, --quality <0-100>", fmt.Sprintf("WebP quality (default: %d)", DefaultQuality)},
		{"  -j, --jobs <n>", fmt.Sprintf("Number of parallel jobs (default: %d)", DefaultJobs)},
		{"  -c, --config <path>", "Load settings from a JSON file"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"Supported inputs: .png .jpg .jpeg .bmp .tiff (input directory root only)", ""},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(out)
		case l.desc == "":
			fmt.Fprintln(out, l.flags)
		case l.flags == "":
			fmt.Fprintln(out, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(out, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}
