// Package diversity computes repertoire diversity indices from a clonotype
// frequency vector.
package diversity

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the diversity of one sample or pooled sample.
type Stats struct {
	Observed                int
	ShannonWiener           float64
	NormalizedShannonWiener float64
	InverseSimpson          float64
}

// FromFrequencies derives diversity indices from a frequency vector. The
// vector is normalized to sum to one first, so unnormalized counts are
// acceptable input. An empty or all-zero vector yields zeroed stats.
func FromFrequencies(freqs []float64) Stats {
	sum := 0.0
	observed := 0
	for _, f := range freqs {
		if f > 0 {
			observed++
		}
		sum += f
	}

	if observed == 0 || sum == 0 {
		return Stats{}
	}

	p := make([]float64, 0, observed)
	sumSq := 0.0
	for _, f := range freqs {
		if f <= 0 {
			continue
		}
		q := f / sum
		p = append(p, q)
		sumSq += q * q
	}

	entropy := stat.Entropy(p)

	out := Stats{
		Observed:       observed,
		ShannonWiener:  math.Exp(entropy),
		InverseSimpson: 1 / sumSq,
	}
	if observed > 1 {
		out.NormalizedShannonWiener = entropy / math.Log(float64(observed))
	}

	return out
}
