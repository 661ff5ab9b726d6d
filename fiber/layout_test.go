package fiber

import (
	"errors"
	"testing"
)

func TestLayoutValidate(t *testing.T) {
	if err := DefaultLayout().Validate(1500, 1600); err != nil {
		t.Fatalf("default layout should validate, got %v", err)
	}
}

func TestLayoutSpacingViolation(t *testing.T) {
	layout := ArrayLayout{
		Count:               2,
		Length:              10,
		Tolerance:           0.01,
		Positions:           []float64{10, 15},
		OriginalWavelengths: []float64{1520, 1560},
	}
	err := layout.Validate(1500, 1600)
	if !errors.Is(err, ErrLayoutViolation) {
		t.Fatalf("expected ErrLayoutViolation for 5 mm spacing with 10 mm gratings, got %v", err)
	}
}

func TestLayoutCountMismatch(t *testing.T) {
	layout := DefaultLayout()
	layout.Positions = []float64{22, 50}
	if err := layout.Validate(1500, 1600); !errors.Is(err, ErrDataRange) {
		t.Errorf("positions mismatch: expected ErrDataRange, got %v", err)
	}

	layout = DefaultLayout()
	layout.OriginalWavelengths = []float64{1500}
	if err := layout.Validate(1500, 1600); !errors.Is(err, ErrDataRange) {
		t.Errorf("wavelengths mismatch: expected ErrDataRange, got %v", err)
	}
}

func TestLayoutOrdering(t *testing.T) {
	layout := DefaultLayout()
	layout.Positions = []float64{50, 22, 70}
	if err := layout.Validate(1500, 1600); !errors.Is(err, ErrLayoutViolation) {
		t.Errorf("expected ErrLayoutViolation for unordered positions, got %v", err)
	}
}

func TestLayoutWavelengthRange(t *testing.T) {
	layout := DefaultLayout()
	layout.OriginalWavelengths = []float64{1500, 1525, 1650}
	if err := layout.Validate(1500, 1600); !errors.Is(err, ErrWavelengthRange) {
		t.Errorf("expected ErrWavelengthRange, got %v", err)
	}
}

func TestLayoutInvalidScalars(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ArrayLayout)
	}{
		{"zero count", func(a *ArrayLayout) { a.Count = 0 }},
		{"zero length", func(a *ArrayLayout) { a.Length = 0 }},
		{"zero tolerance", func(a *ArrayLayout) { a.Tolerance = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := DefaultLayout()
			tc.mutate(&layout)
			if err := layout.Validate(1500, 1600); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestLayoutSpan(t *testing.T) {
	start, end := DefaultLayout().Span()
	if start != 22 || end != 80 {
		t.Errorf("Span = [%g, %g], want [22, 80]", start, end)
	}
}
