package pool

import (
	"github.com/carbocation/pfx"
	"github.com/immunotools/repmisc/clonotype"
	"github.com/immunotools/repmisc/sample"
)

// PooledSample is the result of routing many clonotype records through a
// shared identity key: one aggregator per distinct identity. Key order is
// first-insertion order, so output is deterministic for a fixed input order.
type PooledSample struct {
	variant clonotype.Variant
	policy  Policy

	aggregators map[clonotype.Key]*Aggregator
	order       []clonotype.Key
}

// NewPooledSample prepares an empty pool keyed by the given identity variant.
func NewPooledSample(variant clonotype.Variant, policy Policy) *PooledSample {
	return &PooledSample{
		variant:     variant,
		policy:      policy,
		aggregators: make(map[clonotype.Key]*Aggregator),
	}
}

// Add routes one observation into its identity bucket, creating the bucket on
// first sight.
func (p *PooledSample) Add(c *clonotype.Clonotype, sampleIndex int) {
	key := clonotype.NewKey(p.variant, c)

	if agg, exists := p.aggregators[key]; exists {
		agg.Combine(c, sampleIndex)
		return
	}

	p.aggregators[key] = NewAggregator(p.policy, c, sampleIndex)
	p.order = append(p.order, key)
}

// Len reports the number of distinct identities pooled so far.
func (p *PooledSample) Len() int {
	return len(p.aggregators)
}

// Get returns the aggregator for the identity of c, or nil if that identity
// has not been observed.
func (p *PooledSample) Get(c *clonotype.Clonotype) *Aggregator {
	return p.aggregators[clonotype.NewKey(p.variant, c)]
}

// Each visits every identity bucket in first-insertion order.
func (p *PooledSample) Each(fn func(key clonotype.Key, agg *Aggregator) error) error {
	for _, key := range p.order {
		if err := fn(key, p.aggregators[key]); err != nil {
			return err
		}
	}

	return nil
}

// Pool aggregates every clonotype of every sample in the collection, visiting
// samples in the collection's canonical metadata order and tagging each
// observation with its sample's ordinal index.
func Pool(col *sample.Collection, variant clonotype.Variant, policy Policy) (*PooledSample, error) {
	out := NewPooledSample(variant, policy)

	err := col.Each(func(sampleIndex int, s *sample.Sample) error {
		for _, c := range s.Clonotypes() {
			out.Add(c, sampleIndex)
		}

		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
