package osa

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fbg-xyz/go-fbg/profile"
)

// ErrRunInProgress is the user-facing rejection when a run is submitted
// while another is still active.
var ErrRunInProgress = errors.New("osa: a simulator session is already in progress")

// State names the pipeline stages.
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateUndeformed State = "undeformed-compute"
	StateDeformed   State = "deformed-compute"
	StateSummary    State = "summary-compute"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Progress checkpoints reported at stage boundaries, matching the original
// instrument's progress bar.
const (
	progressStart      = 13
	progressLoaded     = 21
	progressUndeformed = 34
	progressDeforming  = 55
	progressDeformed   = 89
	progressDone       = 100
)

// Request is a single batch simulation request.
type Request struct {
	Config Config
	Mode   profile.Mode

	// DatasetPath is the strain/stress dataset file. May be empty when no
	// interpolating mode is selected.
	DatasetPath string
	LoadConfig  profile.LoadConfig

	// IncludeUndeformed also produces the ambient-only reference spectrum.
	IncludeUndeformed bool

	// Progress, when set, receives the integer percentage checkpoints.
	// It is called from the run's goroutine.
	Progress func(pct int)

	// Workers bounds the reflectance engine's parallelism. Zero means all
	// compute units.
	Workers int
}

// Output is the complete result surface of a successful run.
type Output struct {
	Grid       []float64
	Undeformed *Spectrum // nil unless requested
	Deformed   *Spectrum
	Summaries  []PeakSummary
}

// Outcome is delivered exactly once per submitted run.
type Outcome struct {
	RunID   string
	State   State // StateDone or StateFailed
	Output  *Output
	Err     error
	Elapsed time.Duration
}

// Run executes the full pipeline synchronously: validate and load, optional
// undeformed spectrum, deformed spectrum, peak summaries. Any stage failure
// aborts the remaining stages and discards partial results.
func Run(req Request) (*Output, error) {
	report := req.Progress
	if report == nil {
		report = func(int) {}
	}
	report(progressStart)

	sim, err := NewSimulator(req.Config)
	if err != nil {
		return nil, err
	}
	needsData := req.Mode.Strain == profile.StrainNonUniform || req.Mode.Stress == profile.StressIncluded
	if req.DatasetPath != "" {
		if err := sim.FromFile(req.DatasetPath, req.LoadConfig); err != nil {
			return nil, err
		}
	} else if needsData {
		return nil, fmt.Errorf("%w (strain %s, stress %s need a dataset file)",
			ErrDatasetRequired, req.Mode.Strain, req.Mode.Stress)
	}
	// Build the deformed profiles up front: dataset coverage and band
	// violations must fail the run here, before any spectrum is computed.
	sensors, err := sim.deformedProfiles(req.Mode)
	if err != nil {
		return nil, err
	}
	if req.Workers != 0 {
		sim.engine.Workers = req.Workers
	}
	report(progressLoaded)

	out := &Output{Grid: sim.Grid()}

	if req.IncludeUndeformed {
		out.Undeformed, err = sim.UndeformedFBG()
		if err != nil {
			return nil, err
		}
		report(progressUndeformed)
	}

	report(progressDeforming)
	out.Deformed = sim.spectrum(sensors)
	report(progressDeformed)

	out.Summaries = sim.ExtractPeaks(out.Deformed)
	report(progressDone)
	return out, nil
}

// ErrDatasetRequired is returned when an interpolating mode is selected but
// no dataset path was provided.
var ErrDatasetRequired = errors.New("osa: dataset file required")

// Runner admits at most one run at a time onto a dedicated background
// goroutine. A second submission while one is in flight is rejected with
// ErrRunInProgress; the caller resubmits after the outcome arrives.
type Runner struct {
	mu    sync.Mutex
	busy  bool
	state State
	wg    sync.WaitGroup
}

// NewRunner returns an idle runner.
func NewRunner() *Runner {
	return &Runner{state: StateIdle}
}

// State reports the current pipeline stage.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Submit starts the request on a background goroutine and returns the run ID
// with a channel that delivers the single Outcome. While a run is active,
// further submissions fail with ErrRunInProgress.
func (r *Runner) Submit(req Request) (string, <-chan Outcome, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return "", nil, ErrRunInProgress
	}
	r.busy = true
	r.state = StateLoading
	r.wg.Add(1)
	r.mu.Unlock()

	runID := uuid.NewString()
	done := make(chan Outcome, 1)

	userProgress := req.Progress
	req.Progress = func(pct int) {
		r.checkpointState(pct, req.IncludeUndeformed)
		if userProgress != nil {
			userProgress(pct)
		}
	}

	go func() {
		defer r.wg.Done()
		start := time.Now()
		out, err := Run(req)

		final := StateDone
		if err != nil {
			final = StateFailed
			out = nil
		}
		r.mu.Lock()
		r.busy = false
		r.state = final
		r.mu.Unlock()

		done <- Outcome{
			RunID:   runID,
			State:   final,
			Output:  out,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}()

	return runID, done, nil
}

// Wait blocks until any active run has completed. The host process calls it
// before shutting down; a run is never terminated mid-flight.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// checkpointState maps progress checkpoints onto pipeline states. A run
// that skips the undeformed spectrum goes straight to the deformed stage.
func (r *Runner) checkpointState(pct int, includeUndeformed bool) {
	var s State
	switch {
	case pct < progressLoaded:
		s = StateLoading
	case pct < progressDeforming:
		if includeUndeformed {
			s = StateUndeformed
		} else {
			s = StateDeformed
		}
	case pct < progressDeformed:
		s = StateDeformed
	case pct < progressDone:
		s = StateSummary
	default:
		return // terminal state is set by the run goroutine
	}
	r.mu.Lock()
	if r.busy {
		r.state = s
	}
	r.mu.Unlock()
}
