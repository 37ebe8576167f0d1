// Package timecourse aligns clonotype identities across an ordered sample
// collection, producing one fixed-length abundance vector per identity for
// longitudinal (time-course) analysis.
package timecourse

import (
	"github.com/carbocation/pfx"
	"github.com/immunotools/repmisc/clonotype"
	"github.com/immunotools/repmisc/sample"
)

// Assemble scans every sample of the collection in canonical order and groups
// clonotypes by junction-level identity (nucleotide sequence plus V segment;
// longitudinal tracking needs exact junctions, so the looser matching
// variants are not offered here). Each identity gets a slot array of length
// col.Len(), one slot per sample; identities observed in fewer than two
// samples are discarded. Results follow first-appearance order.
func Assemble(col *sample.Collection) ([]*DynamicClonotype, error) {
	n := col.Len()

	slots := make(map[clonotype.Key][]*clonotype.Clonotype)
	var order []clonotype.Key

	err := col.Each(func(sampleIndex int, s *sample.Sample) error {
		for _, c := range s.Clonotypes() {
			key := clonotype.NewKey(clonotype.NTV, c)

			arr, exists := slots[key]
			if !exists {
				arr = make([]*clonotype.Clonotype, n)
				slots[key] = arr
				order = append(order, key)
			}

			arr[sampleIndex] = c
		}

		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]*DynamicClonotype, 0, len(order))
	for _, key := range order {
		arr := slots[key]

		occupied := 0
		for _, c := range arr {
			if c != nil {
				occupied++
			}
		}
		if occupied < 2 {
			continue
		}

		out = append(out, &DynamicClonotype{key: key, slots: arr})
	}

	return out, nil
}
