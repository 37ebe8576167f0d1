// Package sample holds the sample abstraction: one sequencing dataset's
// clonotype records plus its metadata row, the connections that materialize
// samples from memory or from disk, and the ordered collection tying a set of
// samples to one metadata table.
package sample

import "fmt"

// MetadataTable is an ordered set of sample rows sharing one list of named
// metadata columns. Row insertion order is the canonical sample order for
// every collection built on the table; iteration must never fall back to map
// order. Tables compare by pointer identity: two samples belong together iff
// they reference the same table.
type MetadataTable struct {
	columns []string
	rows    []*Row
	byID    map[string]*Row
}

// Row is one sample's metadata: its unique id plus one value per table column.
type Row struct {
	parent *MetadataTable

	SampleID string
	Values   []string
}

// NewMetadataTable creates an empty table with the given named columns.
func NewMetadataTable(columns ...string) *MetadataTable {
	return &MetadataTable{
		columns: columns,
		byID:    make(map[string]*Row),
	}
}

// Columns lists the named metadata columns shared by every row.
func (t *MetadataTable) Columns() []string {
	return t.columns
}

// CreateRow appends a row for sampleID with the given column values. The id
// must be new and the value count must match the column count.
func (t *MetadataTable) CreateRow(sampleID string, values ...string) (*Row, error) {
	if _, exists := t.byID[sampleID]; exists {
		return nil, fmt.Errorf("duplicate sample id %q in metadata table", sampleID)
	}
	if len(values) != len(t.columns) {
		return nil, fmt.Errorf("sample %q: %d metadata values for %d columns", sampleID, len(values), len(t.columns))
	}

	row := &Row{parent: t, SampleID: sampleID, Values: values}
	t.rows = append(t.rows, row)
	t.byID[sampleID] = row

	return row, nil
}

// Len reports the number of rows.
func (t *MetadataTable) Len() int {
	return len(t.rows)
}

// Row returns the i-th row in canonical order.
func (t *MetadataTable) Row(i int) (*Row, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, len(t.rows))
	}

	return t.rows[i], nil
}

// RowByID returns the row for sampleID.
func (t *MetadataTable) RowByID(sampleID string) (*Row, error) {
	row, exists := t.byID[sampleID]
	if !exists {
		return nil, fmt.Errorf("%w: sample id %q", ErrUnknownSample, sampleID)
	}

	return row, nil
}

// SampleIDs lists every sample id in canonical order.
func (t *MetadataTable) SampleIDs() []string {
	ids := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		ids = append(ids, row.SampleID)
	}

	return ids
}

// Table returns the owning metadata table.
func (r *Row) Table() *MetadataTable {
	return r.parent
}

// Value looks up one named metadata column for this row.
func (r *Row) Value(column string) (string, bool) {
	for i, name := range r.parent.columns {
		if name == column {
			return r.Values[i], true
		}
	}

	return "", false
}
