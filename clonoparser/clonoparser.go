package clonoparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/immunotools/repmisc/clonotype"
)

// Parser reads clonotype tables under one layout. It satisfies the sample
// package's Decoder contract.
type Parser struct {
	CSVReaderSettings *csv.Reader
	Layout            Layout
}

// New builds a parser for a named software tag from Layouts.
func New(layout string) (*Parser, error) {
	l, exists := Layouts[layout]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithLayout(l)
}

// NewWithLayout builds a parser around an explicit layout, for tables whose
// column arrangement is known but unnamed.
func NewWithLayout(layout Layout) (*Parser, error) {
	n := &Parser{}
	n.Layout = layout
	n.CSVReaderSettings = &csv.Reader{}
	n.CSVReaderSettings.Comma = layout.Delimiter
	n.CSVReaderSettings.Comment = layout.Comment

	return n, nil
}

// ParseRow converts one table row into a clonotype record using the layout's
// row function.
func (p *Parser) ParseRow(row []string) (*clonotype.Clonotype, error) {
	return (*p.Layout.Parser)(&p.Layout, row)
}

// Decode reads an entire clonotype table, skipping the header when the layout
// declares one, and returns the records in file order. The native layout
// decodes by header name rather than column index.
func (p *Parser) Decode(r io.Reader) ([]*clonotype.Clonotype, error) {
	if p.Layout.Native {
		return decodeNative(r)
	}

	rdr := csv.NewReader(r)
	rdr.Comma = p.CSVReaderSettings.Comma
	rdr.Comment = p.CSVReaderSettings.Comment
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true

	var out []*clonotype.Clonotype
	first := true

	for {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}

		if first && p.Layout.HasHeader {
			first = false
			continue
		}
		first = false

		c, err := p.ParseRow(row)
		if err != nil {
			return nil, pfx.Err(err)
		}

		out = append(out, c)
	}

	return out, nil
}

var defaultParseRow = func(layout *Layout, row []string) (*clonotype.Clonotype, error) {
	return parseCommon(layout, row)
}

// MiXCR reports segments as comma-separated hit lists with scores in
// parentheses; keep only the best hit's name.
var segmentScoreParseRow = func(layout *Layout, row []string) (*clonotype.Clonotype, error) {
	c, err := parseCommon(layout, row)
	if err != nil {
		return nil, err
	}

	c.V = bestSegmentHit(c.V)
	c.D = bestSegmentHit(c.D)
	c.J = bestSegmentHit(c.J)

	return c, nil
}

func parseCommon(layout *Layout, row []string) (*clonotype.Clonotype, error) {
	c := &clonotype.Clonotype{}

	maxCol := layout.ColCount
	for _, col := range []int{layout.ColFreq, layout.ColCDR3NT, layout.ColCDR3AA, layout.ColV, layout.ColD, layout.ColJ} {
		if col > maxCol {
			maxCol = col
		}
	}
	if len(row) <= maxCol {
		return nil, fmt.Errorf("clonotype row has %d columns, layout requires at least %d", len(row), maxCol+1)
	}

	if count, err := strconv.ParseInt(row[layout.ColCount], 10, 64); err != nil {
		return nil, err
	} else {
		c.Count = count
	}

	if freq, err := strconv.ParseFloat(row[layout.ColFreq], 64); err != nil {
		return nil, err
	} else {
		c.Freq = freq
	}

	c.CDR3NT = row[layout.ColCDR3NT]
	c.CDR3AA = row[layout.ColCDR3AA]
	c.V = segmentOrEmpty(layout.ColV, row)
	c.D = segmentOrEmpty(layout.ColD, row)
	c.J = segmentOrEmpty(layout.ColJ, row)

	annotate(c)

	return c, nil
}

// annotate fills the frame and completeness flags from the junction
// sequences. '*' marks a stop codon, '~' an incomplete junction.
func annotate(c *clonotype.Clonotype) {
	c.InFrame = len(c.CDR3NT)%3 == 0
	c.NoStop = !strings.Contains(c.CDR3AA, "*")
	c.Complete = !strings.Contains(c.CDR3AA, "~") && c.CDR3AA != ""
}

func segmentOrEmpty(col int, row []string) string {
	if col < 0 || col >= len(row) {
		return ""
	}

	seg := row[col]
	if seg == "." || seg == "N/A" {
		return ""
	}

	return seg
}

func bestSegmentHit(hits string) string {
	if i := strings.IndexAny(hits, ",("); i >= 0 {
		return hits[:i]
	}

	return hits
}
