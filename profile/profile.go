package profile

import (
	"github.com/carbocation/runningvariance"
)

// Bin accumulates weighted residue class counts for one positional bin, plus
// a running stat over the weights pushed through it.
type Bin struct {
	runningvariance.RunningStat

	counts map[string]map[string]float64
	totals map[string]float64
}

func newBin(groups []*Group) *Bin {
	b := &Bin{
		RunningStat: *runningvariance.NewRunningStat(),
		counts:      make(map[string]map[string]float64),
		totals:      make(map[string]float64),
	}
	for _, g := range groups {
		b.counts[g.Name] = make(map[string]float64)
	}

	return b
}

func (b *Bin) update(groups []*Group, residue byte, weight float64) {
	for _, g := range groups {
		b.counts[g.Name][g.ClassOf(residue)] += weight
		b.totals[g.Name] += weight
	}

	b.Push(weight)
}

// Count returns the accumulated weight for one class of one group.
func (b *Bin) Count(group, class string) float64 {
	classes, exists := b.counts[group]
	if !exists {
		return 0
	}

	return classes[class]
}

// Total returns the accumulated weight over all classes of one group, the
// denominator for downstream normalization. No normalization happens here.
func (b *Bin) Total(group string) float64 {
	return b.totals[group]
}

// Profile assigns each residue of an incoming sequence to one of a fixed
// number of bins by fractional position, so an N-residue junction and a
// 2N-residue junction spread over the same bin range.
type Profile struct {
	groups []*Group
	bins   []*Bin
}

// New builds a profile with nBins positional bins over the given groups.
func New(nBins int, groups ...*Group) *Profile {
	p := &Profile{groups: groups, bins: make([]*Bin, nBins)}
	for i := range p.bins {
		p.bins[i] = newBin(groups)
	}

	return p
}

// Update adds one sequence with the given weight: residue i of a length-L
// sequence lands in bin floor(i/L*B). An empty sequence updates nothing.
func (p *Profile) Update(sequence string, weight float64) {
	n := len(sequence)

	for i := 0; i < n; i++ {
		bin := int((float64(i) / float64(n)) * float64(len(p.bins)))

		p.bins[bin].update(p.groups, sequence[i], weight)
	}
}

// NumBins reports the bin count.
func (p *Profile) NumBins() int {
	return len(p.bins)
}

// Bin returns the i-th positional bin.
func (p *Profile) Bin(i int) *Bin {
	return p.bins[i]
}

// Groups lists the property groups this profile accumulates.
func (p *Profile) Groups() []*Group {
	return p.groups
}
