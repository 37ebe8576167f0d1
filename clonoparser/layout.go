// Package clonoparser decodes clonotype tables emitted by repertoire
// sequencing software. Each supported program gets a Layout describing its
// column arrangement; the parser itself is format-agnostic.
package clonoparser

import (
	"strings"

	"github.com/immunotools/repmisc/clonotype"
)

// Layout describes one software's clonotype table: delimiter, comment marker,
// whether a header line precedes the data, and the column index of each
// required field. Segment columns set to -1 are absent from the format.
type Layout struct {
	Delimiter rune
	Comment   rune
	HasHeader bool
	Native    bool

	ColCount  int
	ColFreq   int
	ColCDR3NT int
	ColCDR3AA int
	ColV      int
	ColD      int
	ColJ      int

	Parser *func(layout *Layout, row []string) (*clonotype.Clonotype, error)
}

// Layouts maps a software tag to its table layout. VDJtools is the native
// format and the default for every CLI in this repo.
var Layouts = map[string]Layout{
	"VDJtools": {
		Delimiter: '\t',
		Comment:   '#',
		HasHeader: true,
		Native:    true,
		ColCount:  0,
		ColFreq:   1,
		ColCDR3NT: 2,
		ColCDR3AA: 3,
		ColV:      4,
		ColD:      5,
		ColJ:      6,
		Parser:    &defaultParseRow,
	},
	"MiXCR": {
		Delimiter: '\t',
		Comment:   '#',
		HasHeader: true,
		ColCount:  1,
		ColFreq:   2,
		ColCDR3NT: 23,
		ColCDR3AA: 32,
		ColV:      5,
		ColD:      6,
		ColJ:      7,
		Parser:    &segmentScoreParseRow,
	},
	"MiTCR": {
		Delimiter: '\t',
		Comment:   '#',
		HasHeader: true,
		ColCount:  0,
		ColFreq:   1,
		ColCDR3NT: 2,
		ColCDR3AA: 5,
		ColV:      7,
		ColD:      8,
		ColJ:      9,
		Parser:    &defaultParseRow,
	},
	"ImmunoSeq": {
		Delimiter: '\t',
		Comment:   '#',
		HasHeader: true,
		ColCount:  2,
		ColFreq:   3,
		ColCDR3NT: 0,
		ColCDR3AA: 1,
		ColV:      11,
		ColD:      15,
		ColJ:      19,
		Parser:    &defaultParseRow,
	},
}

// LayoutNames lists the supported software tags for flag help text.
func LayoutNames() string {
	b := strings.Builder{}
	i := 0
	for m := range Layouts {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(m)
		i++
	}

	return b.String()
}
