package clonotype

import (
	"fmt"
	"hash/fnv"
)

// Variant selects which clonotype fields participate in identity matching.
// Two keys are only ever compared within one variant; the zero value is not a
// valid variant.
type Variant int

const (
	// AA matches on the CDR3 amino acid sequence alone.
	AA Variant = iota + 1
	// AAV additionally requires an identical V segment.
	AAV
	// AAVJ additionally requires identical V and J segments.
	AAVJ
	// NT matches on the CDR3 nucleotide sequence alone.
	NT
	// NTV additionally requires an identical V segment. This is the identity
	// used for longitudinal tracking, where junction-level precision matters.
	NTV
	// NTVJ additionally requires identical V and J segments.
	NTVJ
	// Strict requires both sequences and both segments to match.
	Strict
)

var variantNames = map[string]Variant{
	"aa":     AA,
	"aaV":    AAV,
	"aaVJ":   AAVJ,
	"nt":     NT,
	"ntV":    NTV,
	"ntVJ":   NTVJ,
	"strict": Strict,
}

// ParseVariant resolves a command-line name such as "aaV" into a Variant.
func ParseVariant(name string) (Variant, error) {
	v, exists := variantNames[name]
	if !exists {
		return 0, fmt.Errorf("unknown clonotype matching variant %q (valid: aa, aaV, aaVJ, nt, ntV, ntVJ, strict)", name)
	}

	return v, nil
}

func (v Variant) String() string {
	for name, variant := range variantNames {
		if variant == v {
			return name
		}
	}

	return fmt.Sprintf("Variant(%d)", int(v))
}

// Key captures the discriminating fields of one clonotype under one variant.
// Key is comparable, so it can be used directly as a map key: equality and
// hashing both derive from the same field subset, and records whose
// non-discriminating fields differ still collide into one bucket. A missing
// field is a valid distinct value (the empty string), never an error.
type Key struct {
	variant Variant

	cdr3nt string
	cdr3aa string
	v      string
	j      string
}

// NewKey extracts the identity of c under the given variant.
func NewKey(variant Variant, c *Clonotype) Key {
	k := Key{variant: variant}

	switch variant {
	case AA:
		k.cdr3aa = c.CDR3AA
	case AAV:
		k.cdr3aa = c.CDR3AA
		k.v = c.V
	case AAVJ:
		k.cdr3aa = c.CDR3AA
		k.v = c.V
		k.j = c.J
	case NT:
		k.cdr3nt = c.CDR3NT
	case NTV:
		k.cdr3nt = c.CDR3NT
		k.v = c.V
	case NTVJ:
		k.cdr3nt = c.CDR3NT
		k.v = c.V
		k.j = c.J
	case Strict:
		k.cdr3nt = c.CDR3NT
		k.cdr3aa = c.CDR3AA
		k.v = c.V
		k.j = c.J
	}

	return k
}

// Variant reports which matching variant produced this key.
func (k Key) Variant() Variant {
	return k.variant
}

// Matches reports whether other has the same identity as the clonotype this
// key was built from, under the key's own variant.
func (k Key) Matches(other *Clonotype) bool {
	return k == NewKey(k.variant, other)
}

// Hash returns a stable 64-bit digest of the discriminating fields. Map usage
// does not need it; it exists for consumers that persist or shard by identity.
func (k Key) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(k.variant), 0})
	h.Write([]byte(k.cdr3nt))
	h.Write([]byte{0})
	h.Write([]byte(k.cdr3aa))
	h.Write([]byte{0})
	h.Write([]byte(k.v))
	h.Write([]byte{0})
	h.Write([]byte(k.j))

	return h.Sum64()
}

// String renders the non-empty discriminating fields, colon-separated, for
// table output.
func (k Key) String() string {
	out := ""
	for _, part := range []string{k.cdr3nt, k.cdr3aa, k.v, k.j} {
		if part == "" {
			continue
		}
		if out != "" {
			out += ":"
		}
		out += part
	}

	return out
}
