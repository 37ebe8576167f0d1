// Package clonotype defines the immutable clonotype record produced by sample
// decoding, along with the identity-key variants used to decide when two
// records observed in different samples represent the same receptor.
package clonotype

// Mutation is one somatic hypermutation call attached to a clonotype, relative
// to the germline segment sequence.
type Mutation struct {
	Pos    int
	From   byte
	To     byte
	Region string
}

// Clonotype describes one unique receptor sequence variant and its observed
// abundance within a single sample. Records are created by the decoding layer
// and never modified afterwards; aggregation state lives elsewhere.
type Clonotype struct {
	Count int64
	Freq  float64

	CDR3NT string
	CDR3AA string

	V string
	D string
	J string

	InFrame  bool
	NoStop   bool
	Complete bool

	Mutations []Mutation
}

// Functional reports whether the clonotype encodes a productive receptor:
// in-frame, stop-free, and with a fully covered junction.
func (c *Clonotype) Functional() bool {
	return c.InFrame && c.NoStop && c.Complete
}
