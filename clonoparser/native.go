package clonoparser

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/immunotools/repmisc/clonotype"
)

// nativeRow mirrors the VDJtools table header. Matching by header name keeps
// the decoder robust to extra columns and column reordering, which the
// index-based layouts cannot offer.
type nativeRow struct {
	Count  int64   `csv:"count"`
	Freq   float64 `csv:"freq"`
	CDR3NT string  `csv:"cdr3nt"`
	CDR3AA string  `csv:"cdr3aa"`
	V      string  `csv:"v"`
	D      string  `csv:"d"`
	J      string  `csv:"j"`
}

func decodeNative(r io.Reader) ([]*clonotype.Clonotype, error) {
	// Older table versions prefix the header with '#'; strip it so the
	// header-name mapping still works.
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, pfx.Err(err)
	}
	header = strings.TrimPrefix(header, "#")
	if strings.TrimSpace(header) == "" {
		return nil, nil
	}

	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		rd := csv.NewReader(in)
		rd.Comma = '\t'
		rd.LazyQuotes = true
		return rd
	})

	rows := []*nativeRow{}
	if err := gocsv.Unmarshal(io.MultiReader(strings.NewReader(header), br), &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]*clonotype.Clonotype, 0, len(rows))
	for _, row := range rows {
		c := &clonotype.Clonotype{
			Count:  row.Count,
			Freq:   row.Freq,
			CDR3NT: row.CDR3NT,
			CDR3AA: row.CDR3AA,
			V:      cleanSegment(row.V),
			D:      cleanSegment(row.D),
			J:      cleanSegment(row.J),
		}
		annotate(c)

		out = append(out, c)
	}

	return out, nil
}

func cleanSegment(seg string) string {
	if seg == "." || seg == "N/A" {
		return ""
	}

	return seg
}
