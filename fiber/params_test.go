package fiber

import (
	"errors"
	"math"
	"testing"
)

func TestPhotoelasticCoefficient(t *testing.T) {
	p := DefaultParameters()

	// pe = n0^2/2 * [p12 - nu*(p11+p12)] with the standard constants.
	want := 1.46 * 1.46 / 2 * (0.270 - 0.17*(0.121+0.270))
	got := p.PhotoelasticCoefficient()
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("PhotoelasticCoefficient = %v, want %v", got, want)
	}
	if math.Abs(got-0.21692) > 1e-4 {
		t.Errorf("PhotoelasticCoefficient = %v, want ~0.21692", got)
	}

	// Pure function: repeated evaluation and a fresh copy agree exactly.
	if p.PhotoelasticCoefficient() != got {
		t.Error("PhotoelasticCoefficient is not deterministic")
	}
	copy := DefaultParameters()
	if copy.PhotoelasticCoefficient() != got {
		t.Error("PhotoelasticCoefficient depends on instance state")
	}

	if s := p.StrainSensitivity(); math.Abs(s-(1-got)) > 1e-15 {
		t.Errorf("StrainSensitivity = %v, want %v", s, 1-got)
	}
}

func TestParametersValidate(t *testing.T) {
	if err := DefaultParameters().Validate(); err != nil {
		t.Fatalf("default parameters should validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"zero youngs modulus", func(p *Parameters) { p.YoungsMod = 0 }},
		{"negative youngs modulus", func(p *Parameters) { p.YoungsMod = -1 }},
		{"poisson too low", func(p *Parameters) { p.PoissonsCoefficient = -1 }},
		{"poisson too high", func(p *Parameters) { p.PoissonsCoefficient = 0.5 }},
		{"visibility above one", func(p *Parameters) { p.FringeVisibility = 1.5 }},
		{"visibility negative", func(p *Parameters) { p.FringeVisibility = -0.1 }},
		{"nan thermo optic", func(p *Parameters) { p.ThermoOptic = math.NaN() }},
		{"infinite ambient", func(p *Parameters) { p.AmbientTemperature = math.Inf(1) }},
		{"zero refractive index", func(p *Parameters) { p.InitialRefractiveIndex = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestExpansionCoefficient(t *testing.T) {
	p := DefaultParameters()
	if got := p.ExpansionCoefficient(); got != p.FiberExpansionCoefficient {
		t.Errorf("without host expansion got %v, want fiber's %v", got, p.FiberExpansionCoefficient)
	}
	p.HasHostExpansion = true
	if got := p.ExpansionCoefficient(); got != p.HostExpansionCoefficient {
		t.Errorf("with host expansion got %v, want host's %v", got, p.HostExpansionCoefficient)
	}
}

func TestDeltaT(t *testing.T) {
	p := DefaultParameters()
	p.EmulateTemperature = 333.15
	if dt := p.DeltaT(); dt != 0 {
		t.Errorf("DeltaT without emulation = %v, want 0", dt)
	}
	p.HasEmulateTemperature = true
	if dt := p.DeltaT(); math.Abs(dt-40) > 1e-9 {
		t.Errorf("DeltaT = %v, want 40", dt)
	}
}

func TestBirefringenceFactorSign(t *testing.T) {
	p := DefaultParameters()
	// p12 > p11 for silica, so tensile transverse stress splits the index
	// with a positive factor.
	if f := p.BirefringenceFactor(); f <= 0 {
		t.Errorf("BirefringenceFactor = %v, want positive", f)
	}
}
