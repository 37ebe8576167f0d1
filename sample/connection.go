package sample

import (
	"io"
	"os"
	"sync"

	"github.com/carbocation/pfx"
	"github.com/immunotools/repmisc/clonotype"
)

// Sample is one sequencing dataset: its clonotype records in file order plus
// a reference to its metadata row.
type Sample struct {
	clonotypes []*clonotype.Clonotype
	row        *Row
}

// NewSample binds a decoded clonotype list to its metadata row.
func NewSample(clonotypes []*clonotype.Clonotype, row *Row) *Sample {
	return &Sample{clonotypes: clonotypes, row: row}
}

// Clonotypes returns the sample's records in their original order.
func (s *Sample) Clonotypes() []*clonotype.Clonotype {
	return s.clonotypes
}

// Metadata returns the sample's metadata row.
func (s *Sample) Metadata() *Row {
	return s.row
}

// ID returns the sample id from the metadata row.
func (s *Sample) ID() string {
	return s.row.SampleID
}

// Decoder turns a raw clonotype table stream into records. Implemented by
// clonoparser.Parser; the sample layer never inspects the wire format itself.
type Decoder interface {
	Decode(r io.Reader) ([]*clonotype.Clonotype, error)
}

// Connection resolves one sample on demand. Repeated access yields stable
// content: either the same cached sample, or a deterministic re-read of the
// same source.
type Connection interface {
	Sample() (*Sample, error)
}

// DummyConnection holds an already-materialized sample.
type DummyConnection struct {
	sample *Sample
}

// NewDummyConnection wraps s in a connection that always returns it.
func NewDummyConnection(s *Sample) *DummyConnection {
	return &DummyConnection{sample: s}
}

// Sample returns the held sample.
func (c *DummyConnection) Sample() (*Sample, error) {
	return c.sample, nil
}

// StreamConnection decodes a sample from a file path. With store enabled the
// first successful decode is cached and returned thereafter; the once guard
// keeps concurrent first accesses from decoding twice. With store disabled
// every access re-opens and re-decodes the source, which keeps memory flat
// for very large sample sets.
type StreamConnection struct {
	path    string
	decoder Decoder
	row     *Row

	store  bool
	once   sync.Once
	cached *Sample
	err    error
}

// NewStreamConnection prepares a lazy connection for one source file. Nothing
// is read until the first Sample call.
func NewStreamConnection(path string, decoder Decoder, row *Row, store bool) *StreamConnection {
	return &StreamConnection{
		path:    path,
		decoder: decoder,
		row:     row,
		store:   store,
	}
}

// Sample decodes the source, or returns the cached result of the first decode
// when storing is enabled.
func (c *StreamConnection) Sample() (*Sample, error) {
	if !c.store {
		return c.decode()
	}

	c.once.Do(func() {
		c.cached, c.err = c.decode()
	})

	return c.cached, c.err
}

func (c *StreamConnection) decode() (*Sample, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	clonotypes, err := c.decoder.Decode(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return NewSample(clonotypes, c.row), nil
}
