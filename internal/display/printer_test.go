package display

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/handiism/webp-converter/internal/config"
	"github.com/handiism/webp-converter/internal/convert"
	"github.com/handiism/webp-converter/internal/model"
)

func TestPrinter_Event(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		event   convert.ProgressEvent
		want    string
	}{
		{"success", false, convert.ProgressEvent{Message: "Converted: a.png -> a.webp", Level: convert.LevelSuccess}, "✓ Converted: a.png -> a.webp"},
		{"error", false, convert.ProgressEvent{Message: "Failed to convert /in/b.png: boom", Level: convert.LevelError}, "✗ Failed to convert /in/b.png: boom"},
		{"warning", false, convert.ProgressEvent{Message: "careful", Level: convert.LevelWarning}, "! careful"},
		{"info", false, convert.ProgressEvent{Message: "Found 2 images to convert", Level: convert.LevelInfo}, "Found 2 images to convert"},
		{"verbose hidden", false, convert.ProgressEvent{Message: "Queued: a.png", Level: convert.LevelVerbose}, ""},
		{"verbose shown", true, convert.ProgressEvent{Message: "Queued: a.png", Level: convert.LevelVerbose}, "Queued: a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf, tt.verbose)
			p.Event(tt.event)

			got := strings.TrimSpace(buf.String())
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no output, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("output %q does not contain %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_BannerAndSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	s := config.DefaultSettings()
	s.InputDir = "/photos"
	s.OutputDir = "/photos/webp"
	p.Banner(s)
	p.Summary(model.RunSummary{Successful: 2, Failed: 1})

	out := buf.String()
	for _, want := range []string{
		"Input directory: /photos\n",
		"Output directory: /photos/webp\n",
		"Quality: 80\n",
		"Parallel jobs: 4\n",
		strings.Repeat("-", 50) + "\n",
		"Conversion completed!",
		"Successful: 2\n",
		"Failed: 1\n",
		"Total: 3\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	p.runID = "run00001"
	if err := p.OpenLog(path); err != nil {
		t.Fatalf("OpenLog() error: %v", err)
	}

	p.Event(convert.ProgressEvent{Message: "Queued: a.png", Level: convert.LevelVerbose})
	p.Event(convert.ProgressEvent{Message: "Converted: a.png -> a.webp", Level: convert.LevelSuccess})
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "2024-05-01 12:30:00 run00001 [DEBUG] Queued: a.png\n" +
		"2024-05-01 12:30:00 run00001 [OK] Converted: a.png -> a.webp\n"
	if string(data) != want {
		t.Errorf("log = %q, want %q", data, want)
	}

	// Verbose lines reach the log but not the terminal.
	if strings.Contains(buf.String(), "Queued") {
		t.Errorf("verbose event printed to terminal: %q", buf.String())
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestPrinter_RunIDsDiffer(t *testing.T) {
	a := NewPrinter(&bytes.Buffer{}, false)
	b := NewPrinter(&bytes.Buffer{}, false)
	if len(a.RunID()) != 8 {
		t.Errorf("RunID() = %q, want 8 characters", a.RunID())
	}
	if a.RunID() == b.RunID() {
		t.Errorf("two printers share run ID %q", a.RunID())
	}
}

func TestPrinter_OpenLogFails(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, false)
	if err := p.OpenLog(filepath.Join(t.TempDir(), "missing", "run.log")); err == nil {
		t.Error("OpenLog() should fail for a missing directory")
	}
}

func TestPrinter_ConcurrentEvents(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Event(convert.ProgressEvent{Message: "Converted: x.png -> x.webp", Level: convert.LevelSuccess})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, l := range lines {
		if !strings.Contains(l, "✓ Converted: x.png -> x.webp") {
			t.Errorf("interleaved line %q", l)
		}
	}
}
