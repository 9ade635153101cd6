package task

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"pdftoolkit/config"
	"pdftoolkit/pdf"
)

// ErrTaskRunning is returned by Start while another task is active.
var ErrTaskRunning = errors.New("a task is already running")

// ErrLowResources is returned by Start when the host fails the preflight
// resource check.
var ErrLowResources = errors.New("insufficient system resources")

const cancelledByUser = "cancelled by user"

// Signal is the cooperative cancellation flag shared between the Runner and
// the running task. The runner sets it at most once; the task reads it at
// every unit boundary. It is never cleared within one run.
type Signal struct {
	stop atomic.Bool
}

func (s *Signal) Set() {
	s.stop.Store(true)
}

func (s *Signal) IsSet() bool {
	return s.stop.Load()
}

// Runner owns at most one in-flight task and the event queue its consumer
// drains. Start refuses a second task while one is active; the consumer
// returns the runner to idle by calling Finish after it observes a terminal
// event. The runner never watches its own completion.
type Runner struct {
	cfg    *config.Config
	lib    pdf.Library
	opener pdf.Opener
	queue  *Queue

	mu     sync.Mutex
	active *TaskSpec
	signal *Signal
}

func NewRunner(cfg *config.Config, lib pdf.Library, opener pdf.Opener) *Runner {
	if opener == nil {
		opener = pdf.NopOpener{}
	}
	return &Runner{
		cfg:    cfg,
		lib:    lib,
		opener: opener,
		queue:  NewQueue(),
	}
}

// Events returns the queue the consumer loop drains.
func (r *Runner) Events() *Queue {
	return r.queue
}

// Start validates the spec, claims the single task slot and spawns the task
// goroutine. It fails synchronously on invalid parameters, starved host
// resources, or ErrTaskRunning; in every failure case the running task, if
// any, is untouched.
func (r *Runner) Start(spec TaskSpec) error {
	if err := spec.Params.Validate(); err != nil {
		return err
	}
	if err := r.checkInputSizes(spec); err != nil {
		return err
	}
	if err := checkResources(r.cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrLowResources, err)
	}

	r.mu.Lock()
	if r.active != nil {
		r.mu.Unlock()
		return ErrTaskRunning
	}
	sig := &Signal{}
	claimed := spec
	r.active = &claimed
	r.signal = sig
	r.mu.Unlock()

	go r.run(claimed, sig)
	return nil
}

// Cancel requests cancellation of the active task and returns immediately;
// termination is observed later through the terminal event. No-op when idle.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.signal != nil {
		r.signal.Set()
	}
}

func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

// Active returns the spec of the in-flight task, or nil when idle.
func (r *Runner) Active() *TaskSpec {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return nil
	}
	spec := *r.active
	return &spec
}

// Finish returns the runner to idle. The consumer calls it after observing a
// terminal event.
func (r *Runner) Finish() {
	r.mu.Lock()
	r.active = nil
	r.signal = nil
	r.mu.Unlock()
}

func (r *Runner) checkInputSizes(spec TaskSpec) error {
	if r.cfg.MaxInputSize <= 0 {
		return nil
	}
	for _, path := range spec.Params.InputPaths() {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("could not access input file: %w", err)
		}
		if info.Size() > r.cfg.MaxInputSize {
			return fmt.Errorf("input file %s size %d exceeds limit of %d bytes",
				filepath.Base(path), info.Size(), r.cfg.MaxInputSize)
		}
	}
	return nil
}

// run executes one task on its own goroutine. Nothing escapes the goroutine:
// returned errors and panics are both converted into a single Error event.
func (r *Runner) run(spec TaskSpec, sig *Signal) {
	defer func() {
		if rec := recover(); rec != nil {
			r.queue.Push(Error{Message: fmt.Sprintf("task panicked: %v", rec)})
		}
	}()

	var err error
	switch p := spec.Params.(type) {
	case SearchParams:
		err = r.runSearch(p, sig)
	case NumberParams:
		err = r.runNumber(p, sig)
	case MergeParams:
		err = r.runMerge(p, sig)
	case ExtractParams:
		err = r.runExtract(p, sig)
	case ConvertParams:
		err = r.runConvert(p, sig)
	default:
		err = fmt.Errorf("unknown task kind %q", spec.Params.Kind())
	}
	if err != nil {
		r.queue.Push(Error{Message: err.Error()})
	}
}

// outputPath derives a collision-free result path from an input file name.
func (r *Runner) outputPath(inputPath, suffix, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return UniquePath(filepath.Join(r.cfg.ResultFolder, base+suffix+ext))
}

// preview hands the output to the default application when enabled.
// Failures stay inside the opener; they are never task errors.
func (r *Runner) preview(path string) {
	if r.cfg.Preview {
		r.opener.Open(path)
	}
}

// percent truncates so that 100 is only ever reported at the final unit.
func percent(done, total int) int {
	return int(float64(done) / float64(total) * 100)
}
