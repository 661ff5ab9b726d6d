// Package fiber holds the physical parameter model for an FBG sensor array:
// fiber and material constants, the virtual array layout, and the eager
// validation that rejects a run before any spectrum is computed.
package fiber

import (
	"fmt"
	"math"
)

// Parameters are the fiber and material constants for one simulation run.
// They are immutable inputs: validated once, then read-only for the lifetime
// of the run that owns them.
type Parameters struct {
	// InitialRefractiveIndex is the effective refractive index n0 of the
	// unperturbed fiber core.
	InitialRefractiveIndex float64 `json:"initialRefractiveIndex"`

	// MeanChangeRefractiveIndex is the mean index modulation delta-n of the
	// inscribed grating.
	MeanChangeRefractiveIndex float64 `json:"meanChangeRefractiveIndex"`

	// FringeVisibility of the index modulation, in [0,1].
	FringeVisibility float64 `json:"fringeVisibility"`

	// Pockel (photoelastic) constants.
	DirectionalRefractiveP11 float64 `json:"directionalRefractiveP11"`
	DirectionalRefractiveP12 float64 `json:"directionalRefractiveP12"`

	// YoungsMod is the elastic modulus E in Pa.
	YoungsMod float64 `json:"youngsMod"`

	// PoissonsCoefficient is the Poisson ratio, inside (-1, 0.5).
	PoissonsCoefficient float64 `json:"poissonsCoefficient"`

	// FiberExpansionCoefficient is the fiber's thermal expansion alpha [1/K].
	FiberExpansionCoefficient float64 `json:"fiberExpansionCoefficient"`

	// HostExpansionCoefficient replaces the fiber's own expansion when the
	// sensor is bonded to an emulated host material and HasHostExpansion is
	// set.
	HostExpansionCoefficient float64 `json:"hostExpansionCoefficient"`
	HasHostExpansion         bool    `json:"hasHostExpansion"`

	// ThermoOptic is the thermo-optic coefficient xi [1/K].
	ThermoOptic float64 `json:"thermoOptic"`

	// AmbientTemperature in K. EmulateTemperature, when HasEmulateTemperature
	// is set, is the emulated model temperature; otherwise no temperature
	// perturbation is applied.
	AmbientTemperature    float64 `json:"ambientTemperature"`
	EmulateTemperature    float64 `json:"emulateTemperature,omitempty"`
	HasEmulateTemperature bool    `json:"hasEmulateTemperature"`
}

// DefaultParameters returns the constants for a standard germanosilicate
// fiber at room temperature.
func DefaultParameters() Parameters {
	return Parameters{
		InitialRefractiveIndex:    1.46,
		MeanChangeRefractiveIndex: 4.5e-4,
		FringeVisibility:          1.0,
		DirectionalRefractiveP11:  0.121,
		DirectionalRefractiveP12:  0.270,
		YoungsMod:                 75e9,
		PoissonsCoefficient:       0.17,
		FiberExpansionCoefficient: 0.55e-6,
		HostExpansionCoefficient:  5e-5,
		ThermoOptic:               8.3e-6,
		AmbientTemperature:        293.15,
		EmulateTemperature:        293.15,
	}
}

// Validate checks every constant for finiteness and physical range.
func (p Parameters) Validate() error {
	fields := map[string]float64{
		"initialRefractiveIndex":    p.InitialRefractiveIndex,
		"meanChangeRefractiveIndex": p.MeanChangeRefractiveIndex,
		"fringeVisibility":          p.FringeVisibility,
		"directionalRefractiveP11":  p.DirectionalRefractiveP11,
		"directionalRefractiveP12":  p.DirectionalRefractiveP12,
		"youngsMod":                 p.YoungsMod,
		"poissonsCoefficient":       p.PoissonsCoefficient,
		"fiberExpansionCoefficient": p.FiberExpansionCoefficient,
		"hostExpansionCoefficient":  p.HostExpansionCoefficient,
		"thermoOptic":               p.ThermoOptic,
		"ambientTemperature":        p.AmbientTemperature,
		"emulateTemperature":        p.EmulateTemperature,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameter, name)
		}
	}
	if p.YoungsMod <= 0 {
		return fmt.Errorf("%w: Young's modulus must be positive, got %g", ErrInvalidParameter, p.YoungsMod)
	}
	if nu := p.PoissonsCoefficient; nu <= -1 || nu >= 0.5 {
		return fmt.Errorf("%w: Poisson ratio must be inside (-1, 0.5), got %g", ErrInvalidParameter, nu)
	}
	if v := p.FringeVisibility; v < 0 || v > 1 {
		return fmt.Errorf("%w: fringe visibility must be in [0,1], got %g", ErrInvalidParameter, v)
	}
	if p.InitialRefractiveIndex <= 0 {
		return fmt.Errorf("%w: refractive index must be positive, got %g", ErrInvalidParameter, p.InitialRefractiveIndex)
	}
	return nil
}

// PhotoelasticCoefficient derives the effective photoelastic coefficient
//
//	pe = n0^2/2 * [p12 - nu*(p11 + p12)]
//
// A pure function of the parameters: same inputs, same value, no state.
func (p Parameters) PhotoelasticCoefficient() float64 {
	n0 := p.InitialRefractiveIndex
	return n0 * n0 / 2 *
		(p.DirectionalRefractiveP12 -
			p.PoissonsCoefficient*(p.DirectionalRefractiveP11+p.DirectionalRefractiveP12))
}

// StrainSensitivity is the strain-optic Bragg sensitivity (1 - pe).
func (p Parameters) StrainSensitivity() float64 {
	return 1 - p.PhotoelasticCoefficient()
}

// ExpansionCoefficient is the thermal expansion that enters the Bragg shift:
// the host material's when host expansion is emulated, the fiber's otherwise.
func (p Parameters) ExpansionCoefficient() float64 {
	if p.HasHostExpansion {
		return p.HostExpansionCoefficient
	}
	return p.FiberExpansionCoefficient
}

// DeltaT is the temperature offset from ambient. Zero unless temperature
// emulation was requested.
func (p Parameters) DeltaT() float64 {
	if !p.HasEmulateTemperature {
		return 0
	}
	return p.EmulateTemperature - p.AmbientTemperature
}

// BirefringenceFactor converts a transverse stress [Pa] into a local index
// split between the two polarization modes:
//
//	dn = n0^3/(2E) * (1 + nu) * (p12 - p11) * sigma
//
// The factor is the sigma-independent part.
func (p Parameters) BirefringenceFactor() float64 {
	n0 := p.InitialRefractiveIndex
	return n0 * n0 * n0 / (2 * p.YoungsMod) *
		(1 + p.PoissonsCoefficient) *
		(p.DirectionalRefractiveP12 - p.DirectionalRefractiveP11)
}
