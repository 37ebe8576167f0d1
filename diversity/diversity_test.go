package diversity

import (
	"math"
	"testing"
)

func TestFromFrequencies(t *testing.T) {
	for _, tc := range []struct {
		name     string
		freqs    []float64
		observed int
		shannon  float64
		simpson  float64
	}{
		// Four even clonotypes: both effective-number indices equal 4.
		{"uniform", []float64{0.25, 0.25, 0.25, 0.25}, 4, 4, 4},
		// One clonotype: no diversity.
		{"single", []float64{1}, 1, 1, 1},
		// Unnormalized counts must behave like their normalized form.
		{"counts", []float64{10, 10, 10, 10}, 4, 4, 4},
	} {
		got := FromFrequencies(tc.freqs)

		if got.Observed != tc.observed {
			t.Errorf("%s: observed %d, expected %d", tc.name, got.Observed, tc.observed)
		}
		if math.Abs(got.ShannonWiener-tc.shannon) > 1e-9 {
			t.Errorf("%s: Shannon-Wiener %g, expected %g", tc.name, got.ShannonWiener, tc.shannon)
		}
		if math.Abs(got.InverseSimpson-tc.simpson) > 1e-9 {
			t.Errorf("%s: inverse Simpson %g, expected %g", tc.name, got.InverseSimpson, tc.simpson)
		}
	}
}

func TestNormalizedShannonWiener(t *testing.T) {
	got := FromFrequencies([]float64{0.25, 0.25, 0.25, 0.25})
	if math.Abs(got.NormalizedShannonWiener-1) > 1e-9 {
		t.Errorf("uniform distribution must normalize to 1, got %g", got.NormalizedShannonWiener)
	}

	skewed := FromFrequencies([]float64{0.97, 0.01, 0.01, 0.01})
	if skewed.NormalizedShannonWiener >= got.NormalizedShannonWiener {
		t.Errorf("a skewed repertoire must score below a uniform one: %g vs %g",
			skewed.NormalizedShannonWiener, got.NormalizedShannonWiener)
	}
}

func TestDegenerateInputs(t *testing.T) {
	for _, freqs := range [][]float64{nil, {}, {0, 0, 0}} {
		if got := FromFrequencies(freqs); got != (Stats{}) {
			t.Errorf("FromFrequencies(%v) = %+v, expected zeroed stats", freqs, got)
		}
	}
}
