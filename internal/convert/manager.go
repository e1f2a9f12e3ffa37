package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/handiism/webp-converter/internal/config"
	"github.com/handiism/webp-converter/internal/discover"
	ioutils "github.com/handiism/webp-converter/internal/io"
	"github.com/handiism/webp-converter/internal/model"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoImages is returned by Initialize when the input directory holds
	// no supported images.
	ErrNoImages = errors.New("no images found in the input directory root")

	// ErrAlreadyStarted is returned by StartConversions on a Manager that
	// already ran.
	ErrAlreadyStarted = errors.New("conversions already started")
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the upper-case level name used in log files.
func (l ProgressLevel) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelVerbose:
		return "DEBUG"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSuccess:
		return "OK"
	default:
		return "UNKNOWN"
	}
}

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// State is the lifecycle stage of a Manager.
type State int32

const (
	// StateIdle means tasks may be loaded and StartConversions not yet called.
	StateIdle State = iota
	// StateRunning means workers are converting.
	StateRunning
	// StateDrained means every task produced its outcome.
	StateDrained
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDrained:
		return "drained"
	default:
		return "unknown"
	}
}

// Codec converts one image file into a WebP file.
type Codec interface {
	ConvertFile(input, output string, quality int) error
}

// Manager coordinates a batch of conversions.
type Manager struct {
	settings *config.Settings
	codec    Codec

	tasks []model.ConversionTask
	state atomic.Int32

	totalFiles  int32
	doneFiles   int32
	okFiles     int32
	failedFiles int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a Manager that encodes with ioutils.ImageService.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return NewManagerWithCodec(settings, ioutils.NewImageService(), onProgress)
}

// NewManagerWithCodec creates a Manager that converts through codec.
func NewManagerWithCodec(settings *config.Settings, codec Codec, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		codec:      codec,
		onProgress: onProgress,
	}
}

// Initialize scans the input directory and builds the task list.
//
// A directory that cannot be read is reported at LevelError and treated as
// empty. ErrNoImages is returned when no task was built.
func (m *Manager) Initialize() error {
	if State(m.state.Load()) != StateIdle {
		return ErrAlreadyStarted
	}

	paths, err := discover.FindImages(m.settings.InputDir)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading directory %s: %v", m.settings.InputDir, err), Level: LevelError})
		paths = nil
	}

	m.tasks = discover.BuildTasks(paths, m.settings.OutputDir)
	m.totalFiles = int32(len(m.tasks))

	if len(m.tasks) == 0 {
		return ErrNoImages
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d images to convert", len(m.tasks)), Level: LevelInfo})

	collisions := discover.FindCollisions(m.tasks)
	for _, out := range discover.SortedKeys(collisions) {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Output %s is produced by %d inputs; the last to finish wins", filepath.Base(out), len(collisions[out])),
			Level:   LevelWarning,
		})
	}

	for _, t := range m.tasks {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Queued: %s", filepath.Base(t.InputPath)), Level: LevelVerbose})
	}

	return nil
}

// StartConversions converts every task on at most settings.Jobs workers and
// blocks until all of them finished.
//
// Each task yields exactly one outcome; failures are counted, never fatal.
// The calling goroutine folds outcomes into the returned summary.
func (m *Manager) StartConversions() (model.RunSummary, error) {
	if !m.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return model.RunSummary{}, ErrAlreadyStarted
	}

	jobs := m.settings.Jobs
	if jobs < 1 {
		jobs = 1
	}

	outcomes := make(chan model.ConversionOutcome, len(m.tasks))

	go func() {
		var g errgroup.Group
		g.SetLimit(jobs)

		for _, task := range m.tasks {
			task := task // capture
			g.Go(func() error {
				outcomes <- m.convertTask(task)
				return nil
			})
		}

		_ = g.Wait()
		close(outcomes)
	}()

	var summary model.RunSummary
	for outcome := range outcomes {
		if outcome.Unexpected {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Unexpected error converting %s: %s", outcome.Task.InputPath, outcome.Detail),
				Level:   LevelError,
			})
		}

		summary.Add(outcome)
		if outcome.OK() {
			atomic.AddInt32(&m.okFiles, 1)
		} else {
			atomic.AddInt32(&m.failedFiles, 1)
		}
		atomic.AddInt32(&m.doneFiles, 1)
	}

	m.state.Store(int32(StateDrained))
	return summary, nil
}

// GetProgress returns current conversion progress.
func (m *Manager) GetProgress() (done, total, ok, failed int32) {
	return atomic.LoadInt32(&m.doneFiles), m.totalFiles,
		atomic.LoadInt32(&m.okFiles), atomic.LoadInt32(&m.failedFiles)
}

// State returns the current lifecycle stage.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// Tasks returns a copy of the task list built by Initialize.
func (m *Manager) Tasks() []model.ConversionTask {
	out := make([]model.ConversionTask, len(m.tasks))
	copy(out, m.tasks)
	return out
}

func (m *Manager) convertTask(task model.ConversionTask) (outcome model.ConversionOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = model.Failed(task, fmt.Errorf("%v", r))
			outcome.Unexpected = true
		}
	}()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Converting: %s", filepath.Base(task.InputPath)), Level: LevelVerbose})

	if err := m.codec.ConvertFile(task.InputPath, task.OutputPath, m.settings.Quality); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to convert %s: %v", task.InputPath, err), Level: LevelError})
		return model.Failed(task, err)
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Converted: %s -> %s", filepath.Base(task.InputPath), filepath.Base(task.OutputPath)),
		Level:   LevelSuccess,
	})
	return model.Succeeded(task)
}

// progress delivers events one at a time so callbacks need no locking of
// their own.
func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress(event)
}
