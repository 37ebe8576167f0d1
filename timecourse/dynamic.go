package timecourse

import (
	"gonum.org/v1/gonum/stat"

	"github.com/immunotools/repmisc/clonotype"
)

// Epsilon is the additive jitter applied before taking logs in MeanFrequency,
// keeping absent timepoints out of the zero domain.
const Epsilon = 1e-7

// DynamicClonotype is a read-only view over one clonotype identity's
// per-sample slot array. Slot i holds the instance observed in sample i of
// the collection, or nil where the identity was absent. Derived views are
// computed once on first request and cached.
type DynamicClonotype struct {
	key   clonotype.Key
	slots []*clonotype.Clonotype

	freqs          []float64
	representative *clonotype.Clonotype
	peak           int
	peakComputed   bool
	meanFreq       float64
	meanComputed   bool
}

// Key returns the junction-level identity this view tracks.
func (d *DynamicClonotype) Key() clonotype.Key {
	return d.key
}

// Len reports the number of slots, one per sample in the source collection.
func (d *DynamicClonotype) Len() int {
	return len(d.slots)
}

// At returns the instance observed in sample i, or nil.
func (d *DynamicClonotype) At(i int) *clonotype.Clonotype {
	return d.slots[i]
}

// Frequencies returns the per-sample frequency vector, 0.0 where the
// identity was absent. The returned slice is shared; callers must not mutate
// it.
func (d *DynamicClonotype) Frequencies() []float64 {
	if d.freqs == nil {
		d.freqs = make([]float64, len(d.slots))
		for i, c := range d.slots {
			if c != nil {
				d.freqs[i] = c.Freq
			}
		}
	}

	return d.freqs
}

// Representative returns the highest-frequency instance; ties resolve to the
// first maximal slot in array order.
func (d *DynamicClonotype) Representative() *clonotype.Clonotype {
	if d.representative == nil {
		for _, c := range d.slots {
			if c == nil {
				continue
			}
			if d.representative == nil || c.Freq > d.representative.Freq {
				d.representative = c
			}
		}
	}

	return d.representative
}

// Peak returns the index of the maximum-frequency slot, or -1 when every
// slot is absent or zero.
func (d *DynamicClonotype) Peak() int {
	if !d.peakComputed {
		d.peak = -1

		best := 0.0
		for i, f := range d.Frequencies() {
			if f > best {
				best = f
				d.peak = i
			}
		}

		d.peakComputed = true
	}

	return d.peak
}

// MeanFrequency is the geometric mean of (freq + Epsilon) over all slots,
// absent slots included. The historical name says "mean frequency" but the
// formula is (Π(freq_i+ε))^(1/n), kept bit-for-bit for comparability with
// existing outputs.
func (d *DynamicClonotype) MeanFrequency() float64 {
	if !d.meanComputed {
		jittered := make([]float64, len(d.slots))
		for i, f := range d.Frequencies() {
			jittered[i] = f + Epsilon
		}

		d.meanFreq = stat.GeometricMean(jittered, nil)
		d.meanComputed = true
	}

	return d.meanFreq
}

// Mutations returns the per-sample mutation sets; absent or zero-frequency
// slots yield empty sets.
func (d *DynamicClonotype) Mutations() [][]clonotype.Mutation {
	out := make([][]clonotype.Mutation, len(d.slots))
	for i, c := range d.slots {
		if c == nil || c.Freq == 0 {
			out[i] = []clonotype.Mutation{}
			continue
		}

		out[i] = c.Mutations
	}

	return out
}

// Occupancy reports in how many samples the identity was observed.
func (d *DynamicClonotype) Occupancy() int {
	n := 0
	for _, c := range d.slots {
		if c != nil {
			n++
		}
	}

	return n
}
