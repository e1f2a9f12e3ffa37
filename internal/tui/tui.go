// Package tui provides a Bubble Tea terminal user interface for webp-converter.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/webp-converter/internal/config"
	"github.com/handiism/webp-converter/internal/convert"
	"github.com/handiism/webp-converter/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateConverting
	StateComplete
	StateError
)

// Form fields, in tab order.
const (
	fieldInput = iota
	fieldOutput
	fieldQuality
	fieldJobs
	fieldVerbose
	fieldCount
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 10

// eventBuffer is the capacity of the channel between the manager callback
// and the UI loop.
const eventBuffer = 256

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   convert.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	inputs   [2]textinput.Model
	focus    int
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	logs     []LogEntry
	err      error

	// Conversion manager reference and its event stream
	manager *convert.Manager
	events  chan convert.ProgressEvent

	// Conversion progress
	total   int32
	done    int32
	ok      int32
	failed  int32
	summary model.RunSummary

	width  int
	height int
}

// NewModel creates a new TUI model prefilled from settings.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	in := textinput.New()
	in.Placeholder = "/path/to/images"
	in.CharLimit = 500
	in.Width = 60
	in.SetValue(settings.InputDir)
	in.Focus()

	out := textinput.New()
	out.Placeholder = "/path/to/output"
	out.CharLimit = 500
	out.Width = 60
	out.SetValue(settings.OutputDir)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	s := *settings
	return Model{
		state:    StateInput,
		inputs:   [2]textinput.Model{in, out},
		spinner:  sp,
		progress: prog,
		settings: &s,
		logs:     make([]LogEntry, 0),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the conversion manager.
	ProgressMsg struct {
		Event convert.ProgressEvent
	}

	// InitDoneMsg is sent when the input directory has been scanned.
	InitDoneMsg struct {
		Manager *convert.Manager
		Err     error
	}

	// ConvertDoneMsg is sent when every task produced its outcome.
	ConvertDoneMsg struct {
		Summary model.RunSummary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}

	// eventsClosedMsg is sent once the event channel is drained and closed.
	eventsClosedMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state == StateInput {
			return m.updateForm(msg)
		}

		switch msg.String() {
		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m = m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != convert.LevelVerbose || m.settings.Verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		cmds = append(cmds, listenEvents(m.events))

	case eventsClosedMsg:
		// Nothing left to listen for.

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.manager = msg.Manager
			_, m.total, _, _ = m.manager.GetProgress()
			m.state = StateConverting
			cmds = append(cmds, startConversions(m.manager, m.events), m.tickProgress())
		}

	case ConvertDoneMsg:
		if m.manager != nil {
			m.done, m.total, m.ok, m.failed = m.manager.GetProgress()
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.summary = msg.Summary
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateConverting {
			m.done, m.total, m.ok, m.failed = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.done) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateForm handles keys on the input form.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "down":
		m = m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case "shift+tab", "up":
		m = m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case "enter":
		return m.submit()
	}

	switch m.focus {
	case fieldInput, fieldOutput:
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd

	case fieldQuality:
		m.settings.Quality = adjust(msg.String(), m.settings.Quality, 5, config.MinQuality, config.MaxQuality)

	case fieldJobs:
		m.settings.Jobs = adjust(msg.String(), m.settings.Jobs, 1, 1, 64)

	case fieldVerbose:
		switch msg.String() {
		case " ", "space", "v":
			m.settings.Verbose = !m.settings.Verbose
		}
	}
	return m, nil
}

// adjust applies a "+"/"-" (or right/left) step to value within [lo, hi].
func adjust(key string, value, step, lo, hi int) int {
	switch key {
	case "+", "=", "right", "l":
		value += step
	case "-", "left", "h":
		value -= step
	default:
		return value
	}
	if value < lo {
		value = lo
	}
	if value > hi {
		value = hi
	}
	return value
}

func (m Model) setFocus(field int) Model {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// submit validates the form and starts scanning.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.settings.InputDir = strings.TrimSpace(m.inputs[fieldInput].Value())
	m.settings.OutputDir = strings.TrimSpace(m.inputs[fieldOutput].Value())

	if err := m.settings.Validate(); err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}
	if err := m.settings.ValidateInputDir(); err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	settings := *m.settings
	m.events = make(chan convert.ProgressEvent, eventBuffer)
	events := m.events
	manager := convert.NewManager(&settings, func(e convert.ProgressEvent) {
		events <- e
	})

	m.state = StateScanning
	return m, tea.Batch(initialize(manager, m.events), listenEvents(m.events), m.spinner.Tick)
}

// reset returns to the input form, keeping the last values.
func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.manager = nil
	m.events = nil
	m.total, m.done, m.ok, m.failed = 0, 0, 0, 0
	m.summary = model.RunSummary{}
	m.progress.SetPercent(0)
	return m.setFocus(fieldInput)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// listenEvents waits for the next manager event.
func listenEvents(events <-chan convert.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return ProgressMsg{Event: e}
	}
}

// initialize scans the input directory. On failure no more events follow,
// so the channel is closed here.
func initialize(manager *convert.Manager, events chan convert.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		if err := manager.Initialize(); err != nil {
			close(events)
			return InitDoneMsg{Err: err}
		}
		return InitDoneMsg{Manager: manager}
	}
}

// startConversions runs the batch in background and closes the event
// channel once the last outcome is in.
func startConversions(manager *convert.Manager, events chan convert.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		summary, err := manager.StartConversions()
		close(events)
		return ConvertDoneMsg{Summary: summary, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("WebP Converter"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Convert a folder of images to WebP"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) label(field int, text string) string {
	if m.focus == field {
		return focusStyle.Render("> " + text)
	}
	return subtitleStyle.Render("  " + text)
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(m.label(fieldInput, "Input directory:"))
	b.WriteString("\n  ")
	b.WriteString(m.inputs[fieldInput].View())
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldOutput, "Output directory:"))
	b.WriteString("\n  ")
	b.WriteString(m.inputs[fieldOutput].View())
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldQuality, "Quality: "+strconv.Itoa(m.settings.Quality)))
	b.WriteString("\n")
	b.WriteString(m.label(fieldJobs, "Parallel jobs: "+strconv.Itoa(m.settings.Jobs)))
	b.WriteString("\n")

	verboseCheck := "[ ]"
	if m.settings.Verbose {
		verboseCheck = "[×]"
	}
	b.WriteString(m.label(fieldVerbose, verboseCheck+" Verbose output"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning " + m.settings.InputDir + "..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Converting %d images (quality %d, %d jobs)",
		m.total, m.settings.Quality, m.settings.Jobs)))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d | Converted: %d | Failed: %d",
		m.done, m.total, m.ok, m.failed)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Conversion completed!\n\n"+
			"Successful: %d\n"+
			"Failed: %d\n"+
			"Total: %d\n\n"+
			"Output: %s",
		m.summary.Successful,
		m.summary.Failed,
		m.summary.Total(),
		m.settings.OutputDir,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	switch {
	case errors.Is(m.err, convert.ErrNoImages):
		b.WriteString("  No images found in the input directory root")
	case m.err != nil:
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case convert.LevelError:
			style = errorStyle
			prefix = "✗"
		case convert.LevelWarning:
			style = warningStyle
			prefix = "!"
		case convert.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case convert.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "tab: next field • +/-: adjust • space: toggle • enter: start • esc: quit"
	case StateScanning, StateConverting:
		return "ctrl+c: quit"
	case StateComplete, StateError:
		return "r: new conversion • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
