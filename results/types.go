// Package results defines the structured output format for simulation runs.
package results

import (
	"math"
	"time"

	"github.com/fbg-xyz/go-fbg/osa"
	"github.com/fbg-xyz/go-fbg/profile"
)

const SchemaVersion = "1.0.0"

// Results contains the complete output surface of one run.
type Results struct {
	Version    string          `json:"version"`
	Metadata   Metadata        `json:"metadata"`
	Simulation Simulation      `json:"simulation"`
	Spectra    *Spectra        `json:"spectra,omitempty"`
	Summaries  []SensorSummary `json:"summaries,omitempty"`
}

// Metadata records run identity and execution information.
type Metadata struct {
	RunID       string    `json:"runId"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"` // success, error
	Error       string    `json:"error,omitempty"`
	ComputeTime float64   `json:"computeTime"` // seconds
}

// Simulation echoes the parameters the run was made with.
type Simulation struct {
	Config            osa.Config   `json:"config"`
	Mode              profile.Mode `json:"mode"`
	DatasetPath       string       `json:"datasetPath,omitempty"`
	IncludeUndeformed bool         `json:"includeUndeformed"`
}

// Spectra carries the wavelength grid and the reflectance series over it.
// Undeformed is present only when the run requested it.
type Spectra struct {
	Wavelengths []float64 `json:"wavelengths"`
	Undeformed  []float64 `json:"undeformed,omitempty"`
	Deformed    []float64 `json:"deformed"`
}

// SensorSummary is the JSON form of a peak summary. Shift and Width are null
// when no peak cleared the detectability threshold.
type SensorSummary struct {
	Sensor      int      `json:"sensor"`
	Original    float64  `json:"original"`
	Detected    bool     `json:"detected"`
	Peak        *float64 `json:"peak,omitempty"`
	Reflectance *float64 `json:"reflectance,omitempty"`
	Shift       *float64 `json:"shift,omitempty"`
	Width       *float64 `json:"width,omitempty"`
}

// Build assembles a Results record from a run's outcome. On failure the
// spectra and summaries are absent; no partial results are surfaced.
func Build(runID string, req osa.Request, out *osa.Output, runErr error, elapsed time.Duration) *Results {
	r := &Results{
		Version: SchemaVersion,
		Metadata: Metadata{
			RunID:       runID,
			Timestamp:   time.Now().UTC(),
			Status:      "success",
			ComputeTime: elapsed.Seconds(),
		},
		Simulation: Simulation{
			Config:            req.Config,
			Mode:              req.Mode,
			DatasetPath:       req.DatasetPath,
			IncludeUndeformed: req.IncludeUndeformed,
		},
	}
	if runErr != nil {
		r.Metadata.Status = "error"
		r.Metadata.Error = runErr.Error()
		return r
	}

	r.Spectra = &Spectra{
		Wavelengths: out.Grid,
		Deformed:    out.Deformed.Reflectance,
	}
	if out.Undeformed != nil {
		r.Spectra.Undeformed = out.Undeformed.Reflectance
	}
	r.Summaries = make([]SensorSummary, len(out.Summaries))
	for i, s := range out.Summaries {
		r.Summaries[i] = newSensorSummary(s)
	}
	return r
}

func newSensorSummary(s osa.PeakSummary) SensorSummary {
	out := SensorSummary{
		Sensor:   s.Sensor,
		Original: s.Original,
		Detected: s.Detected,
	}
	if !s.Detected {
		return out
	}
	out.Peak = ptr(s.Peak)
	out.Reflectance = ptr(s.Reflectance)
	out.Shift = ptr(s.Shift)
	out.Width = ptr(s.Width)
	return out
}

func ptr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
