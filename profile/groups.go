// Package profile accumulates positional amino acid property summaries over
// many CDR3 sequences, binned by fractional position so variable-length
// junctions remain comparable.
package profile

// Group partitions the amino acid alphabet into named classes, e.g. charge
// into acidic/basic/neutral. Residues outside the partition fall into the
// Unknown class.
type Group struct {
	Name    string
	classOf map[byte]string
}

// Unknown is the class assigned to residues a group does not cover.
const Unknown = "unknown"

// NewGroup builds a partition from class name to member residues.
func NewGroup(name string, classes map[string]string) *Group {
	g := &Group{Name: name, classOf: make(map[byte]string)}
	for class, residues := range classes {
		for i := 0; i < len(residues); i++ {
			g.classOf[residues[i]] = class
		}
	}

	return g
}

// ClassOf maps one residue to its class name within this group.
func (g *Group) ClassOf(residue byte) string {
	class, exists := g.classOf[residue]
	if !exists {
		return Unknown
	}

	return class
}

// Classes lists the distinct class names, Unknown excluded; order is not
// specified.
func (g *Group) Classes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, class := range g.classOf {
		if _, exists := seen[class]; exists {
			continue
		}
		seen[class] = struct{}{}
		out = append(out, class)
	}

	return out
}

// BasicGroups returns the standard property partitions used by the CDR3
// profiling output: side-chain charge at physiological pH, Kyte-Doolittle
// hydropathy classes, and polarity.
func BasicGroups() []*Group {
	return []*Group{
		NewGroup("charge", map[string]string{
			"acidic":  "DE",
			"basic":   "KRH",
			"neutral": "ACFGILMNPQSTVWY",
		}),
		NewGroup("hydropathy", map[string]string{
			"hydrophobic": "AILMFVCW",
			"hydrophilic": "RNDQEKH",
			"neutral":     "GPSTY",
		}),
		NewGroup("polarity", map[string]string{
			"polar":    "RNDQEHKSTY",
			"nonpolar": "ACGILMFPWV",
		}),
	}
}
