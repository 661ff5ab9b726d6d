package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/fbg-xyz/go-fbg/osa"
	"github.com/fbg-xyz/go-fbg/profile"
)

// requestFlags registers the full simulation parameter surface on fs and
// returns a builder that assembles the request after parsing. Defaults are
// the original instrument's.
func requestFlags(fs *flag.FlagSet) func() (osa.Request, error) {
	cfg := osa.DefaultConfig()

	// Dataset
	data := fs.String("data", "", "Strain/stress dataset file (position, strain[, stress] rows)")
	siUnits := fs.Bool("si", false, "Dataset positions are in meters; convert to mm")
	skipRows := fs.Int("skip-rows", 0, "Header rows to skip in the dataset")
	delimiter := fs.String("delimiter", "", "Dataset column delimiter (default: any whitespace)")

	// Perturbation modes
	strain := fs.String("strain", "none", "Strain type: none, uniform, non-uniform")
	strainValue := fs.Float64("strain-value", 0, "Scalar strain for --strain uniform")
	stress := fs.String("stress", "none", "Stress type: none, included")
	temperature := fs.String("temperature", "", "Emulated model temperature in K (default: no temperature emulation)")
	hostExpansion := fs.String("host-expansion", "", "Host thermal expansion coefficient in 1/K (default: fiber's own)")

	// Band
	minBand := fs.Float64("min", cfg.MinBandwidth, "Minimum bandwidth in nm")
	maxBand := fs.Float64("max", cfg.MaxBandwidth, "Maximum bandwidth in nm")
	resolution := fs.Float64("resolution", cfg.Resolution, "Simulation resolution in nm")

	// Fiber constants
	n0 := fs.Float64("n0", cfg.Fiber.InitialRefractiveIndex, "Initial effective refractive index")
	dneff := fs.Float64("dneff", cfg.Fiber.MeanChangeRefractiveIndex, "Mean index modulation")
	visibility := fs.Float64("visibility", cfg.Fiber.FringeVisibility, "Fringe visibility [0..1]")
	p11 := fs.Float64("p11", cfg.Fiber.DirectionalRefractiveP11, "Pockel photoelastic constant p11")
	p12 := fs.Float64("p12", cfg.Fiber.DirectionalRefractiveP12, "Pockel photoelastic constant p12")
	youngs := fs.Float64("youngs", cfg.Fiber.YoungsMod, "Young's modulus in Pa")
	poisson := fs.Float64("poisson", cfg.Fiber.PoissonsCoefficient, "Poisson ratio")
	alpha := fs.Float64("alpha", cfg.Fiber.FiberExpansionCoefficient, "Fiber thermal expansion coefficient in 1/K")
	xi := fs.Float64("xi", cfg.Fiber.ThermoOptic, "Thermo-optic coefficient in 1/K")
	ambient := fs.Float64("ambient", cfg.Fiber.AmbientTemperature, "Ambient temperature in K")

	// Array layout
	count := fs.Int("count", cfg.Layout.Count, "Number of sensors")
	length := fs.Float64("length", cfg.Layout.Length, "Grating length in mm")
	tolerance := fs.Float64("tolerance", cfg.Layout.Tolerance, "Center-to-center tolerance in mm")
	positions := fs.String("positions", joinFloats(cfg.Layout.Positions), "Sensor positions in mm, comma-separated")
	wavelengths := fs.String("wavelengths", joinFloats(cfg.Layout.OriginalWavelengths), "Original Bragg wavelengths in nm, comma-separated")

	undeformed := fs.Bool("undeformed", false, "Also compute the undeformed reference spectrum")
	workers := fs.Int("workers", 0, "Parallel workers for the reflectance engine (0 = all CPUs)")

	return func() (osa.Request, error) {
		var req osa.Request

		cfg.MinBandwidth, cfg.MaxBandwidth, cfg.Resolution = *minBand, *maxBand, *resolution
		cfg.Fiber.InitialRefractiveIndex = *n0
		cfg.Fiber.MeanChangeRefractiveIndex = *dneff
		cfg.Fiber.FringeVisibility = *visibility
		cfg.Fiber.DirectionalRefractiveP11 = *p11
		cfg.Fiber.DirectionalRefractiveP12 = *p12
		cfg.Fiber.YoungsMod = *youngs
		cfg.Fiber.PoissonsCoefficient = *poisson
		cfg.Fiber.FiberExpansionCoefficient = *alpha
		cfg.Fiber.ThermoOptic = *xi
		cfg.Fiber.AmbientTemperature = *ambient

		if *temperature != "" {
			v, err := strconv.ParseFloat(*temperature, 64)
			if err != nil {
				return req, fmt.Errorf("parse --temperature: %w", err)
			}
			cfg.Fiber.EmulateTemperature = v
			cfg.Fiber.HasEmulateTemperature = true
		}
		if *hostExpansion != "" {
			v, err := strconv.ParseFloat(*hostExpansion, 64)
			if err != nil {
				return req, fmt.Errorf("parse --host-expansion: %w", err)
			}
			cfg.Fiber.HostExpansionCoefficient = v
			cfg.Fiber.HasHostExpansion = true
		}

		cfg.Layout.Count = *count
		cfg.Layout.Length = *length
		cfg.Layout.Tolerance = *tolerance
		var err error
		if cfg.Layout.Positions, err = parseFloats(*positions); err != nil {
			return req, fmt.Errorf("parse --positions: %w", err)
		}
		if cfg.Layout.OriginalWavelengths, err = parseFloats(*wavelengths); err != nil {
			return req, fmt.Errorf("parse --wavelengths: %w", err)
		}

		if req.Mode.Strain, err = parseStrain(*strain); err != nil {
			return req, err
		}
		req.Mode.UniformStrain = *strainValue
		if req.Mode.Stress, err = parseStress(*stress); err != nil {
			return req, err
		}

		req.Config = cfg
		req.DatasetPath = *data
		req.LoadConfig = profile.DefaultLoadConfig()
		req.LoadConfig.SIUnits = *siUnits
		req.LoadConfig.SkipRows = *skipRows
		if *delimiter != "" {
			req.LoadConfig.Delimiter = rune((*delimiter)[0])
		}
		req.IncludeUndeformed = *undeformed
		req.Workers = *workers
		return req, nil
	}
}

func parseStrain(s string) (profile.StrainType, error) {
	switch s {
	case "none":
		return profile.StrainNone, nil
	case "uniform":
		return profile.StrainUniform, nil
	case "non-uniform":
		return profile.StrainNonUniform, nil
	}
	return 0, fmt.Errorf("unknown strain type %q (want none, uniform or non-uniform)", s)
}

func parseStress(s string) (profile.StressType, error) {
	switch s {
	case "none":
		return profile.StressNone, nil
	case "included":
		return profile.StressIncluded, nil
	}
	return 0, fmt.Errorf("unknown stress type %q (want none or included)", s)
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
