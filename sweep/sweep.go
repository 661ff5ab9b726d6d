// Package sweep evaluates how the simulated spectrum responds when a scalar
// perturbation is swept over a range of values. It produces calibration
// curves for uniform strain and temperature and finite-difference estimates
// of the wavelength sensitivity.
package sweep

import (
	"math"
	"sync"

	"github.com/fbg-xyz/go-fbg/osa"
	"github.com/fbg-xyz/go-fbg/profile"
)

// Scorer reduces a run's peak summaries to a single figure of merit.
type Scorer func(summaries []osa.PeakSummary) float64

// ShiftScorer returns the wavelength shift of one sensor (1-based index in
// the array layout), NaN when its peak was not detected.
func ShiftScorer(sensor int) Scorer {
	return func(summaries []osa.PeakSummary) float64 {
		for _, s := range summaries {
			if s.Sensor == sensor {
				return s.Shift
			}
		}
		return math.NaN()
	}
}

// MeanShiftScorer averages the wavelength shift over all detected sensors.
func MeanShiftScorer() Scorer {
	return func(summaries []osa.PeakSummary) float64 {
		sum, n := 0.0, 0
		for _, s := range summaries {
			if s.Detected {
				sum += s.Shift
				n++
			}
		}
		if n == 0 {
			return math.NaN()
		}
		return sum / float64(n)
	}
}

// WidthScorer returns one sensor's full width at half maximum.
func WidthScorer(sensor int) Scorer {
	return func(summaries []osa.PeakSummary) float64 {
		for _, s := range summaries {
			if s.Sensor == sensor {
				return s.Width
			}
		}
		return math.NaN()
	}
}

// Analyzer repeats a simulation run with one perturbation value substituted
// into an otherwise fixed configuration and scores each spectrum.
type Analyzer struct {
	cfg     osa.Config
	scorer  Scorer
	workers int
}

// NewAnalyzer creates an analyzer over the given run configuration.
func NewAnalyzer(cfg osa.Config, scorer Scorer) *Analyzer {
	return &Analyzer{cfg: cfg, scorer: scorer}
}

// WithWorkers bounds each run's reflectance-engine parallelism. Sweeps that
// already parallelize across values should pin this to 1.
func (a *Analyzer) WithWorkers(n int) *Analyzer {
	a.workers = n
	return a
}

// evaluate runs the full pipeline once and scores the peak summaries.
func (a *Analyzer) evaluate(cfg osa.Config, mode profile.Mode) (float64, error) {
	out, err := osa.Run(osa.Request{Config: cfg, Mode: mode, Workers: a.workers})
	if err != nil {
		return 0, err
	}
	return a.scorer(out.Summaries), nil
}

func (a *Analyzer) evaluateStrain(strain float64) (float64, error) {
	return a.evaluate(a.cfg, profile.Mode{Strain: profile.StrainUniform, UniformStrain: strain})
}

func (a *Analyzer) evaluateTemperature(temp float64) (float64, error) {
	cfg := a.cfg
	cfg.Fiber.HasEmulateTemperature = true
	cfg.Fiber.EmulateTemperature = temp
	return a.evaluate(cfg, profile.Mode{Strain: profile.StrainNone})
}

// Result is one swept parameter's calibration curve.
type Result struct {
	Parameter string
	Values    []float64
	Scores    []float64
	Best      struct {
		Value float64
		Score float64
	}
	Worst struct {
		Value float64
		Score float64
	}
}

func newResult(parameter string, values []float64) *Result {
	r := &Result{Parameter: parameter, Values: values, Scores: make([]float64, len(values))}
	r.Best.Score = math.Inf(-1)
	r.Worst.Score = math.Inf(1)
	return r
}

func (r *Result) record(i int, score float64) {
	r.Scores[i] = score
	if score > r.Best.Score {
		r.Best.Value, r.Best.Score = r.Values[i], score
	}
	if score < r.Worst.Score {
		r.Worst.Value, r.Worst.Score = r.Values[i], score
	}
}

// SweepStrain scores the spectrum at each uniform strain value.
func (a *Analyzer) SweepStrain(values []float64) (*Result, error) {
	return a.sweep("strain", values, a.evaluateStrain)
}

// SweepStrainRange sweeps evenly spaced strain values in [min, max].
func (a *Analyzer) SweepStrainRange(min, max float64, steps int) (*Result, error) {
	return a.SweepStrain(spacedValues(min, max, steps))
}

// SweepTemperature scores the spectrum at each emulated temperature in K.
func (a *Analyzer) SweepTemperature(values []float64) (*Result, error) {
	return a.sweep("temperature", values, a.evaluateTemperature)
}

// SweepTemperatureRange sweeps evenly spaced temperatures in [min, max] K.
func (a *Analyzer) SweepTemperatureRange(min, max float64, steps int) (*Result, error) {
	return a.SweepTemperature(spacedValues(min, max, steps))
}

func (a *Analyzer) sweep(parameter string, values []float64, eval func(float64) (float64, error)) (*Result, error) {
	result := newResult(parameter, values)
	for i, val := range values {
		score, err := eval(val)
		if err != nil {
			return nil, err
		}
		result.record(i, score)
	}
	return result, nil
}

// SweepStrainParallel runs one goroutine per strain value. Each run's engine
// is restricted to a single worker so the sweep owns the parallelism.
func (a *Analyzer) SweepStrainParallel(values []float64) (*Result, error) {
	inner := *a
	inner.workers = 1

	result := newResult("strain", values)
	scores := make([]float64, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, val := range values {
		wg.Add(1)
		go func(i int, strain float64) {
			defer wg.Done()
			scores[i], errs[i] = inner.evaluateStrain(strain)
		}(i, val)
	}
	wg.Wait()

	for i := range values {
		if errs[i] != nil {
			return nil, errs[i]
		}
		result.record(i, scores[i])
	}
	return result, nil
}

// StrainGradient estimates the derivative of the score with respect to
// uniform strain at the given operating point, by central difference. With
// a ShiftScorer the result is the sensor's strain sensitivity in nm per
// unit strain.
func (a *Analyzer) StrainGradient(at, h float64) (float64, error) {
	if h == 0 {
		h = 1e-6
	}
	plus, err := a.evaluateStrain(at + h)
	if err != nil {
		return 0, err
	}
	minus, err := a.evaluateStrain(at - h)
	if err != nil {
		return 0, err
	}
	return (plus - minus) / (2 * h), nil
}

// TemperatureGradient estimates the derivative of the score with respect to
// the emulated temperature, in score units per K.
func (a *Analyzer) TemperatureGradient(at, h float64) (float64, error) {
	if h == 0 {
		h = 0.5
	}
	plus, err := a.evaluateTemperature(at + h)
	if err != nil {
		return 0, err
	}
	minus, err := a.evaluateTemperature(at - h)
	if err != nil {
		return 0, err
	}
	return (plus - minus) / (2 * h), nil
}

// GridResult holds scores for every strain/temperature combination.
type GridResult struct {
	Combinations []Combination
	Scores       []float64
	Best         struct {
		Combination Combination
		Score       float64
		Index       int
	}
}

// Combination is one operating point of the two-parameter grid.
type Combination struct {
	Strain      float64
	Temperature float64
}

// Grid scores every combination of the given strain and temperature values.
func (a *Analyzer) Grid(strains, temperatures []float64) (*GridResult, error) {
	result := &GridResult{
		Combinations: make([]Combination, 0, len(strains)*len(temperatures)),
		Scores:       make([]float64, 0, len(strains)*len(temperatures)),
	}
	result.Best.Score = math.Inf(-1)
	result.Best.Index = -1

	for _, temp := range temperatures {
		cfg := a.cfg
		cfg.Fiber.HasEmulateTemperature = true
		cfg.Fiber.EmulateTemperature = temp
		for _, strain := range strains {
			score, err := a.evaluate(cfg, profile.Mode{Strain: profile.StrainUniform, UniformStrain: strain})
			if err != nil {
				return nil, err
			}
			combo := Combination{Strain: strain, Temperature: temp}
			result.Combinations = append(result.Combinations, combo)
			result.Scores = append(result.Scores, score)
			if score > result.Best.Score {
				result.Best.Combination = combo
				result.Best.Score = score
				result.Best.Index = len(result.Scores) - 1
			}
		}
	}
	return result, nil
}

func spacedValues(min, max float64, steps int) []float64 {
	if steps < 2 {
		return []float64{min}
	}
	values := make([]float64, steps)
	for i := 0; i < steps; i++ {
		values[i] = min + (max-min)*float64(i)/float64(steps-1)
	}
	return values
}
