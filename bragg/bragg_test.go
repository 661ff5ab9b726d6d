package bragg

import (
	"math"
	"testing"

	"github.com/fbg-xyz/go-fbg/fiber"
	"github.com/fbg-xyz/go-fbg/profile"
)

func mustProfile(t *testing.T, data profile.Dataset, mode profile.Mode) *profile.Profile {
	t.Helper()
	p, err := profile.New(data, mode)
	if err != nil {
		t.Fatalf("profile.New: %v", err)
	}
	return p
}

func TestDeformedZeroPerturbation(t *testing.T) {
	params := fiber.DefaultParameters()
	layout := fiber.DefaultLayout()
	prof := mustProfile(t, nil, profile.Mode{})

	deformed := Deformed(params, layout, prof)
	undeformed := Undeformed(layout)

	if len(deformed) != layout.Count {
		t.Fatalf("got %d profiles, want %d", len(deformed), layout.Count)
	}
	for i := range deformed {
		for k := 0; k < Segments; k++ {
			if deformed[i].Wavelengths[k] != undeformed[i].Wavelengths[k] {
				t.Fatalf("sensor %d segment %d: deformed %v != undeformed %v",
					i+1, k, deformed[i].Wavelengths[k], undeformed[i].Wavelengths[k])
			}
			if deformed[i].IndexSplit[k] != 0 {
				t.Fatalf("sensor %d segment %d: unexpected index split %v", i+1, k, deformed[i].IndexSplit[k])
			}
		}
	}
}

func TestDeformedUniformStrainIsFlat(t *testing.T) {
	params := fiber.DefaultParameters()
	layout := fiber.DefaultLayout()
	eps := 1e-4
	prof := mustProfile(t, nil, profile.Mode{Strain: profile.StrainUniform, UniformStrain: eps})

	for _, sp := range Deformed(params, layout, prof) {
		want := sp.Original * (1 + params.StrainSensitivity()*eps)
		for k, wl := range sp.Wavelengths {
			if math.Abs(wl-want) > 1e-9 {
				t.Errorf("sensor %d segment %d: wavelength %v, want flat %v", sp.Sensor, k, wl, want)
			}
		}
	}
}

func TestDeformedNonUniformStrainChirps(t *testing.T) {
	params := fiber.DefaultParameters()
	layout := fiber.ArrayLayout{
		Count:               1,
		Length:              10,
		Tolerance:           0.01,
		Positions:           []float64{20},
		OriginalWavelengths: []float64{1550},
	}
	data := profile.Dataset{
		{Position: 0, Strain: 0},
		{Position: 100, Strain: 1e-3},
	}
	prof := mustProfile(t, data, profile.Mode{Strain: profile.StrainNonUniform})

	sp := Deformed(params, layout, prof)[0]
	for k := 1; k < Segments; k++ {
		if sp.Wavelengths[k] <= sp.Wavelengths[k-1] {
			t.Fatalf("expected strictly increasing chirp, segment %d: %v <= %v",
				k, sp.Wavelengths[k], sp.Wavelengths[k-1])
		}
	}
	// Midpoints span the grating interior.
	if sp.Positions[0] <= 20 || sp.Positions[Segments-1] >= 30 {
		t.Errorf("segment midpoints [%v, %v] should be inside (20, 30)", sp.Positions[0], sp.Positions[Segments-1])
	}
}

func TestDeformedTemperature(t *testing.T) {
	params := fiber.DefaultParameters()
	params.HasEmulateTemperature = true
	params.EmulateTemperature = params.AmbientTemperature + 50
	layout := fiber.DefaultLayout()
	prof := mustProfile(t, nil, profile.Mode{})

	dT := 50.0
	frac := params.ThermoOptic*dT + params.FiberExpansionCoefficient*dT*params.StrainSensitivity()
	for _, sp := range Deformed(params, layout, prof) {
		want := sp.Original * (1 + frac)
		if math.Abs(sp.Wavelengths[0]-want) > 1e-9 {
			t.Errorf("sensor %d: wavelength %v, want %v", sp.Sensor, sp.Wavelengths[0], want)
		}
	}
}

func TestDeformedStressSplit(t *testing.T) {
	params := fiber.DefaultParameters()
	layout := fiber.ArrayLayout{
		Count:               1,
		Length:              10,
		Tolerance:           0.01,
		Positions:           []float64{20},
		OriginalWavelengths: []float64{1550},
	}
	data := profile.Dataset{
		{Position: 0, Stress: 1e7},
		{Position: 100, Stress: 1e7},
	}
	prof := mustProfile(t, data, profile.Mode{Stress: profile.StressIncluded})

	sp := Deformed(params, layout, prof)[0]
	want := params.BirefringenceFactor() * 1e7
	for k, dn := range sp.IndexSplit {
		if math.Abs(dn-want) > 1e-15 {
			t.Errorf("segment %d: index split %v, want %v", k, dn, want)
		}
	}
	// Stress alone does not move the centroid.
	for k, wl := range sp.Wavelengths {
		if wl != 1550 {
			t.Errorf("segment %d: wavelength %v, want unshifted 1550", k, wl)
		}
	}
}

func TestUndeformedIgnoresTemperature(t *testing.T) {
	layout := fiber.DefaultLayout()
	for i, sp := range Undeformed(layout) {
		for _, wl := range sp.Wavelengths {
			if wl != layout.OriginalWavelengths[i] {
				t.Fatalf("sensor %d: %v, want original %v", i+1, wl, layout.OriginalWavelengths[i])
			}
		}
	}
}
