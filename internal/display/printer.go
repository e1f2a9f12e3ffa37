package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/handiism/webp-converter/internal/config"
	"github.com/handiism/webp-converter/internal/convert"
	"github.com/handiism/webp-converter/internal/model"
)

// RuleWidth is the width of the separator printed around the run.
const RuleWidth = 50

// Printer renders progress events and run reports to a terminal.
//
// A Printer is safe for concurrent use. Verbose events are dropped unless
// verbose output is enabled. When a log file is open, every event is also
// appended to it as a plain timestamped line, verbose ones included. Lines
// carry a short run ID so several runs can share one log file.
type Printer struct {
	out     io.Writer
	verbose bool
	logFile *os.File
	runID   string
	now     func() time.Time

	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	dim     lipgloss.Style

	mu sync.Mutex
}

// NewPrinter creates a Printer writing to out.
//
// Colors are chosen for out: a file or buffer gets plain text.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		verbose: verbose,
		runID:   uuid.NewString()[:8],
		now:     time.Now,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4")),
		success: r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
	}
}

// OpenLog appends a plain copy of every event to path.
// The file is created if needed.
func (p *Printer) OpenLog(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.logFile != nil {
		p.logFile.Close()
	}
	p.logFile = f
	return nil
}

// Close closes the log file, if any.
func (p *Printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.logFile == nil {
		return nil
	}
	err := p.logFile.Close()
	p.logFile = nil
	return err
}

// Banner prints the resolved configuration followed by a rule.
func (p *Printer) Banner(s *config.Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, p.title.Render("WebP Converter "+config.Version))
	fmt.Fprintf(p.out, "Input directory: %s\n", s.InputDir)
	fmt.Fprintf(p.out, "Output directory: %s\n", s.OutputDir)
	fmt.Fprintf(p.out, "Quality: %d\n", s.Quality)
	fmt.Fprintf(p.out, "Parallel jobs: %d\n", s.Jobs)
	fmt.Fprintln(p.out, Rule())

	p.logLine(convert.LevelInfo, fmt.Sprintf("start input=%s output=%s quality=%d jobs=%d", s.InputDir, s.OutputDir, s.Quality, s.Jobs))
}

// Event prints one progress event.
func (p *Printer) Event(e convert.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.logLine(e.Level, e.Message)

	switch e.Level {
	case convert.LevelSuccess:
		fmt.Fprintln(p.out, p.success.Render("✓ "+e.Message))
	case convert.LevelError:
		fmt.Fprintln(p.out, p.failure.Render("✗ "+e.Message))
	case convert.LevelWarning:
		fmt.Fprintln(p.out, p.warning.Render("! "+e.Message))
	case convert.LevelVerbose:
		if p.verbose {
			fmt.Fprintln(p.out, p.dim.Render("  "+e.Message))
		}
	default:
		fmt.Fprintln(p.out, e.Message)
	}
}

// Summary prints the closing report of a run.
func (p *Printer) Summary(sum model.RunSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, Rule())
	fmt.Fprintln(p.out, p.title.Render("Conversion completed!"))
	fmt.Fprintf(p.out, "Successful: %d\n", sum.Successful)
	fmt.Fprintf(p.out, "Failed: %d\n", sum.Failed)
	fmt.Fprintf(p.out, "Total: %d\n", sum.Total())

	p.logLine(convert.LevelInfo, fmt.Sprintf("done successful=%d failed=%d total=%d", sum.Successful, sum.Failed, sum.Total()))
}

// RunID identifies this run in the log file.
func (p *Printer) RunID() string {
	return p.runID
}

// Rule returns the separator line.
func Rule() string {
	return strings.Repeat("-", RuleWidth)
}

// logLine must be called with p.mu held.
func (p *Printer) logLine(level convert.ProgressLevel, msg string) {
	if p.logFile == nil {
		return
	}
	fmt.Fprintf(p.logFile, "%s %s [%s] %s\n", p.now().Format("2006-01-02 15:04:05"), p.runID, level, msg)
}
