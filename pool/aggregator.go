// Package pool merges clonotype records that share an identity across one or
// more samples into aggregated records, under a configurable combination
// policy.
package pool

import (
	"fmt"

	"github.com/immunotools/repmisc/clonotype"
)

// Policy selects how repeated observations of one clonotype identity are
// combined.
type Policy int

const (
	// Sum accumulates frequency and count totals.
	Sum Policy = iota + 1
	// Max keeps the single highest-frequency observation as representative.
	Max
	// Mean reports the arithmetic mean frequency over observations.
	Mean
	// Count tallies occurrences and ignores abundance entirely.
	Count
)

var policyNames = map[string]Policy{
	"sum":   Sum,
	"max":   Max,
	"mean":  Mean,
	"count": Count,
}

// ParsePolicy resolves a command-line name such as "sum" into a Policy.
func ParsePolicy(name string) (Policy, error) {
	p, exists := policyNames[name]
	if !exists {
		return 0, fmt.Errorf("unknown pooling policy %q (valid: sum, max, mean, count)", name)
	}

	return p, nil
}

func (p Policy) String() string {
	for name, policy := range policyNames {
		if policy == p {
			return name
		}
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// Aggregator accumulates every observation of one clonotype identity. It is
// created from the first observation and mutated only through Combine; callers
// must only feed it clonotypes that match the identity it was created for.
type Aggregator struct {
	policy Policy

	representative *clonotype.Clonotype

	freqSum  float64
	countSum int64
	maxFreq  float64

	observations int
	sampleIndex  []int
}

// NewAggregator starts an aggregator from the first observation of a new
// identity. sampleIndex is the ordinal of the sample that produced it within
// its collection.
func NewAggregator(policy Policy, first *clonotype.Clonotype, sampleIndex int) *Aggregator {
	return &Aggregator{
		policy:         policy,
		representative: first,
		freqSum:        first.Freq,
		countSum:       first.Count,
		maxFreq:        first.Freq,
		observations:   1,
		sampleIndex:    []int{sampleIndex},
	}
}

// Combine folds another observation of the same identity into the aggregate.
// It reports whether the representative clonotype was replaced, which only
// the Max policy ever does, and only on a strict new maximum. Frequencies are
// assumed non-negative; no renormalization happens here.
func (a *Aggregator) Combine(other *clonotype.Clonotype, sampleIndex int) bool {
	a.observations++
	a.sampleIndex = append(a.sampleIndex, sampleIndex)

	switch a.policy {
	case Sum, Mean:
		a.freqSum += other.Freq
		a.countSum += other.Count
	case Max:
		if other.Freq > a.maxFreq {
			a.maxFreq = other.Freq
			a.representative = other
			return true
		}
	case Count:
		// Tally only; the observation counter above is the whole state.
	}

	return false
}

// Representative returns the clonotype standing for this identity: the first
// seen, or under Max the highest-frequency instance observed so far.
func (a *Aggregator) Representative() *clonotype.Clonotype {
	return a.representative
}

// Freq reports the aggregate frequency under the aggregator's policy: the
// total for Sum, the maximum for Max, the arithmetic mean for Mean, and zero
// for Count.
func (a *Aggregator) Freq() float64 {
	switch a.policy {
	case Sum:
		return a.freqSum
	case Max:
		return a.maxFreq
	case Mean:
		return a.freqSum / float64(a.observations)
	}

	return 0
}

// Count reports the accumulated read count (Sum and Mean policies), the
// representative's count (Max), or zero (Count policy tallies occurrences,
// not reads).
func (a *Aggregator) Count() int64 {
	switch a.policy {
	case Sum, Mean:
		return a.countSum
	case Max:
		return a.representative.Count
	}

	return 0
}

// MaxFreq reports the highest single-sample frequency seen.
func (a *Aggregator) MaxFreq() float64 {
	return a.maxFreq
}

// Observations reports how many records were folded into this aggregate.
func (a *Aggregator) Observations() int {
	return a.observations
}

// SampleIndices lists the ordinal indices of the samples that contributed, in
// combination order. Indices may repeat when one sample carries several
// records with the same identity.
func (a *Aggregator) SampleIndices() []int {
	return a.sampleIndex
}
