package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// Pair is a transient pairing of two samples with their ordinal indices.
// Pairs produced by the Pairs listing always satisfy I < J.
type Pair struct {
	I, J          int
	First, Second *Sample
}

// Collection is an ordered registry of samples keyed by sample id. Iteration
// order always comes from the metadata table's row sequence, never from the
// id-to-connection map. The member set is fixed at construction.
type Collection struct {
	connections map[string]Connection
	table       *MetadataTable
}

// Options control how file-backed collections materialize their samples.
// Lazy defers decoding to first access; with Lazy off every source is decoded
// during construction. Store caches the decoded sample; without it each
// access re-decodes the source.
type Options struct {
	Strict bool
	Lazy   bool
	Store  bool
}

// FromSamples builds a collection over already-materialized samples. All
// samples must reference the same metadata table as the first; a foreign
// table is a configuration error.
func FromSamples(samples []*Sample) (*Collection, error) {
	col := &Collection{connections: make(map[string]Connection)}

	for i, s := range samples {
		if i == 0 {
			col.table = s.Metadata().Table()
		} else if s.Metadata().Table() != col.table {
			return nil, fmt.Errorf("%w: sample %q references a different metadata table", ErrConfiguration, s.ID())
		}

		col.connections[s.ID()] = NewDummyConnection(s)
	}

	if col.table == nil {
		col.table = NewMetadataTable()
	}

	return col, nil
}

// FromFiles builds a collection from a flat list of clonotype table paths,
// synthesizing one metadata row per file with the base filename as sample id.
// A missing path is fatal under Strict; otherwise it is logged and excluded
// from both the connection map and the metadata table.
func FromFiles(paths []string, decoder Decoder, opts Options) (*Collection, error) {
	col := &Collection{
		connections: make(map[string]Connection),
		table:       NewMetadataTable(),
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s", ErrMissingResource, path)
			}

			log.Printf("Skipping missing sample file %s", path)
			continue
		}

		sampleID := baseSampleID(path)
		row, err := col.table.CreateRow(sampleID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}

		col.connections[sampleID] = NewStreamConnection(path, decoder, row, opts.Store)
	}

	if !opts.Lazy {
		if err := col.resolveAll(); err != nil {
			return nil, err
		}
	}

	return col, nil
}

// FromMetadataFile builds a collection from a tab-separated metadata file:
// the first non-comment line is a header whose first two columns are the
// source path and sample id and whose remaining columns name metadata fields;
// each following line is one sample. Relative source paths resolve against
// the metadata file's directory. Lines starting with '#' are skipped.
func FromMetadataFile(path string, decoder Decoder, opts Options) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return fromMetadata(f, filepath.Dir(path), decoder, opts)
}

func fromMetadata(r io.Reader, dir string, decoder Decoder, opts Options) (*Collection, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = '\t'
	rdr.Comment = '#'
	rdr.FieldsPerRecord = -1

	records, err := rdr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: metadata file has no header", ErrConfiguration)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: metadata header needs at least a path and a sample id column, got %d columns", ErrConfiguration, len(header))
	}

	col := &Collection{
		connections: make(map[string]Connection),
		table:       NewMetadataTable(header[2:]...),
	}

	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: metadata line %d has %d columns, header has %d", ErrConfiguration, i+2, len(record), len(header))
		}

		samplePath, sampleID := record[0], record[1]
		if !filepath.IsAbs(samplePath) {
			samplePath = filepath.Join(dir, samplePath)
		}

		if _, err := os.Stat(samplePath); err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s", ErrMissingResource, samplePath)
			}

			log.Printf("Skipping missing sample file %s (sample %q)", samplePath, sampleID)
			continue
		}

		row, err := col.table.CreateRow(sampleID, record[2:]...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}

		col.connections[sampleID] = NewStreamConnection(samplePath, decoder, row, opts.Store)
	}

	if !opts.Lazy {
		if err := col.resolveAll(); err != nil {
			return nil, err
		}
	}

	return col, nil
}

func (col *Collection) resolveAll() error {
	return col.Each(func(int, *Sample) error { return nil })
}

// Len reports the number of samples.
func (col *Collection) Len() int {
	return col.table.Len()
}

// Metadata returns the collection's metadata table.
func (col *Collection) Metadata() *MetadataTable {
	return col.table
}

// ByID resolves one sample through its connection.
func (col *Collection) ByID(sampleID string) (*Sample, error) {
	conn, exists := col.connections[sampleID]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSample, sampleID)
	}

	return conn.Sample()
}

// ByIndex resolves the i-th sample in canonical metadata order.
func (col *Collection) ByIndex(i int) (*Sample, error) {
	row, err := col.table.Row(i)
	if err != nil {
		return nil, err
	}

	return col.ByID(row.SampleID)
}

// Pair resolves the samples at indices i and j. Indices outside [0, Len) are
// an error; i and j are returned in the order given.
func (col *Collection) Pair(i, j int) (Pair, error) {
	first, err := col.ByIndex(i)
	if err != nil {
		return Pair{}, err
	}

	second, err := col.ByIndex(j)
	if err != nil {
		return Pair{}, err
	}

	return Pair{I: i, J: j, First: first, Second: second}, nil
}

// Pairs lists every unordered sample pair (i, j), i < j, in row-major order
// over the canonical sample ordering: n(n-1)/2 pairs for n samples.
func (col *Collection) Pairs() ([]Pair, error) {
	n := col.Len()
	out := make([]Pair, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pair, err := col.Pair(i, j)
			if err != nil {
				return nil, err
			}

			out = append(out, pair)
		}
	}

	return out, nil
}

// Each resolves every sample in canonical metadata order and passes it, with
// its ordinal index, to fn. Re-invoking Each re-resolves from the connections,
// re-triggering decodes per the store semantics.
func (col *Collection) Each(fn func(i int, s *Sample) error) error {
	for i, sampleID := range col.table.SampleIDs() {
		s, err := col.ByID(sampleID)
		if err != nil {
			return err
		}

		if err := fn(i, s); err != nil {
			return err
		}
	}

	return nil
}

func baseSampleID(path string) string {
	base := filepath.Base(path)
	for _, suffix := range []string{".gz", ".txt", ".tsv"} {
		base = strings.TrimSuffix(base, suffix)
	}

	return base
}
