// Package osa is the optical spectrum analyzer core: it assembles undeformed
// and deformed reflectance spectra for an FBG sensor array and extracts
// per-sensor peak summaries, driven by a single-flight pipeline runner.
package osa

import (
	"fmt"

	"github.com/fbg-xyz/go-fbg/bragg"
	"github.com/fbg-xyz/go-fbg/fiber"
	"github.com/fbg-xyz/go-fbg/grating"
	"github.com/fbg-xyz/go-fbg/profile"
)

// Config is the validated parameter record for one simulation run.
type Config struct {
	Fiber  fiber.Parameters  `json:"fiber"`
	Layout fiber.ArrayLayout `json:"layout"`

	// Simulated band in nm and grid resolution in nm.
	MinBandwidth float64 `json:"minBandwidth"`
	MaxBandwidth float64 `json:"maxBandwidth"`
	Resolution   float64 `json:"resolution"`
}

// DefaultConfig mirrors the original instrument defaults.
func DefaultConfig() Config {
	return Config{
		Fiber:        fiber.DefaultParameters(),
		Layout:       fiber.DefaultLayout(),
		MinBandwidth: 1500,
		MaxBandwidth: 1600,
		Resolution:   0.05,
	}
}

// Spectrum is a reflectance series parallel to the wavelength grid.
type Spectrum struct {
	Wavelengths []float64 `json:"wavelengths"`
	Reflectance []float64 `json:"reflectance"`
}

// Simulator owns the derived state of one run: the wavelength grid, the
// reflectance engine and the loaded dataset. It is not safe for concurrent
// use; the Runner guarantees one run at a time.
type Simulator struct {
	cfg    Config
	grid   grating.Grid
	engine *grating.Engine
	data   profile.Dataset
}

// NewSimulator validates the configuration eagerly and builds the wavelength
// grid. Every parameter, layout and band problem is reported here, before
// any spectrum is computed.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Fiber.Validate(); err != nil {
		return nil, err
	}
	grid, err := grating.NewGrid(cfg.MinBandwidth, cfg.MaxBandwidth, cfg.Resolution)
	if err != nil {
		return nil, err
	}
	if err := cfg.Layout.Validate(cfg.MinBandwidth, cfg.MaxBandwidth); err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:    cfg,
		grid:   grid,
		engine: grating.NewEngine(cfg.Fiber),
	}, nil
}

// Config returns the run configuration.
func (s *Simulator) Config() Config { return s.cfg }

// Grid returns the wavelength grid in nm.
func (s *Simulator) Grid() []float64 { return s.grid }

// Dataset returns the loaded condition samples, nil before FromFile.
func (s *Simulator) Dataset() profile.Dataset { return s.data }

// FromFile loads the strain/stress dataset backing the non-uniform modes.
func (s *Simulator) FromFile(filepath string, config profile.LoadConfig) error {
	data, err := profile.Load(filepath, config)
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

// UndeformedFBG computes the ambient-only array spectrum, with every
// sensor's profile pinned to its original wavelength.
func (s *Simulator) UndeformedFBG() (*Spectrum, error) {
	sensors := bragg.Undeformed(s.cfg.Layout)
	return &Spectrum{
		Wavelengths: s.grid,
		Reflectance: s.engine.ArraySpectrum(s.grid, sensors),
	}, nil
}

// DeformedFBG computes the perturbed array spectrum under the selected
// strain/stress/temperature conditions.
func (s *Simulator) DeformedFBG(mode profile.Mode) (*Spectrum, error) {
	sensors, err := s.deformedProfiles(mode)
	if err != nil {
		return nil, err
	}
	return s.spectrum(sensors), nil
}

// spectrum runs the reflectance engine over prepared sensor profiles.
func (s *Simulator) spectrum(sensors []bragg.SensorProfile) *Spectrum {
	return &Spectrum{
		Wavelengths: s.grid,
		Reflectance: s.engine.ArraySpectrum(s.grid, sensors),
	}
}

// ComputeFBGShiftsAndWidths computes the deformed spectrum and reports each
// sensor's peak shift and spectral width.
func (s *Simulator) ComputeFBGShiftsAndWidths(mode profile.Mode) ([]PeakSummary, error) {
	spectrum, err := s.DeformedFBG(mode)
	if err != nil {
		return nil, err
	}
	return s.ExtractPeaks(spectrum), nil
}

// ExtractPeaks locates, per sensor, the reflectance peak nearest its
// original wavelength in an already computed deformed spectrum.
func (s *Simulator) ExtractPeaks(spectrum *Spectrum) []PeakSummary {
	return extractPeaks(s.grid, spectrum.Reflectance, s.cfg.Layout)
}

// deformedProfiles builds the local-condition profile, checks coverage and
// solves the Bragg condition per sensor. The resulting instantaneous
// wavelengths must stay inside the simulated band.
func (s *Simulator) deformedProfiles(mode profile.Mode) ([]bragg.SensorProfile, error) {
	prof, err := profile.New(s.data, mode)
	if err != nil {
		return nil, err
	}
	if err := prof.CheckCoverage(s.cfg.Layout); err != nil {
		return nil, err
	}
	sensors := bragg.Deformed(s.cfg.Fiber, s.cfg.Layout, prof)
	for _, sp := range sensors {
		for _, wl := range sp.Wavelengths {
			if wl < s.cfg.MinBandwidth || wl > s.cfg.MaxBandwidth {
				return nil, fmt.Errorf("%w: sensor %d shifted to %g nm, outside band [%g, %g] nm",
					fiber.ErrWavelengthRange, sp.Sensor, wl, s.cfg.MinBandwidth, s.cfg.MaxBandwidth)
			}
		}
	}
	return sensors, nil
}
