package sample

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/immunotools/repmisc/clonotype"
)

// countingDecoder fabricates a one-clonotype sample and counts decode calls,
// which is how the lazy/store semantics are observed.
type countingDecoder struct {
	calls int
}

func (d *countingDecoder) Decode(r io.Reader) ([]*clonotype.Clonotype, error) {
	d.calls++
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}

	return []*clonotype.Clonotype{{CDR3AA: "CASSL", Freq: 1}}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestFromSamplesSharedTable(t *testing.T) {
	table := NewMetadataTable("age")
	rowA, _ := table.CreateRow("a", "31")
	rowB, _ := table.CreateRow("b", "44")

	col, err := FromSamples([]*Sample{
		NewSample(nil, rowA),
		NewSample(nil, rowB),
	})
	if err != nil {
		t.Fatal(err)
	}
	if col.Len() != 2 {
		t.Fatalf("collection size %d, expected 2", col.Len())
	}

	// A sample from a foreign table must be rejected outright.
	foreign := NewMetadataTable("age")
	rowC, _ := foreign.CreateRow("c", "20")

	_, err = FromSamples([]*Sample{NewSample(nil, rowA), NewSample(nil, rowC)})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestFromFilesStrictAndSkip(t *testing.T) {
	dir := t.TempDir()
	present := writeFile(t, dir, "present.txt", "data")
	missing := filepath.Join(dir, "missing.txt")

	_, err := FromFiles([]string{present, missing}, &countingDecoder{}, Options{Strict: true, Lazy: true})
	if !errors.Is(err, ErrMissingResource) {
		t.Fatalf("strict mode: expected ErrMissingResource, got %v", err)
	}

	col, err := FromFiles([]string{present, missing}, &countingDecoder{}, Options{Lazy: true, Store: true})
	if err != nil {
		t.Fatalf("non-strict mode must skip, got %v", err)
	}
	if col.Len() != 1 {
		t.Fatalf("collection size %d after skip, expected 1", col.Len())
	}
	if ids := col.Metadata().SampleIDs(); len(ids) != 1 || ids[0] != "present" {
		t.Fatalf("metadata rows %v, expected just [present]", ids)
	}
}

func TestLazyStoreSemantics(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s1.txt", "data")

	for _, tc := range []struct {
		name           string
		lazy, store    bool
		decodesUpFront int
		decodesAfter3  int
	}{
		{"eager", false, true, 1, 0},
		{"lazy cached", true, true, 0, 1},
		{"lazy uncached", true, false, 0, 3},
	} {
		decoder := &countingDecoder{}
		col, err := FromFiles([]string{path}, decoder, Options{Lazy: tc.lazy, Store: tc.store})
		if err != nil {
			t.Fatal(err)
		}

		if decoder.calls != tc.decodesUpFront {
			t.Errorf("%s: %d decodes at construction, expected %d", tc.name, decoder.calls, tc.decodesUpFront)
		}

		decoder.calls = 0
		for i := 0; i < 3; i++ {
			if _, err := col.ByID("s1"); err != nil {
				t.Fatal(err)
			}
		}
		if decoder.calls != tc.decodesAfter3 {
			t.Errorf("%s: %d decodes over 3 accesses, expected %d", tc.name, decoder.calls, tc.decodesAfter3)
		}
	}
}

func TestFromMetadataFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "data")
	writeFile(t, dir, "b.txt", "data")

	meta := writeFile(t, dir, "metadata.txt",
		"# a comment line\n"+
			"file\tsample.id\ttimepoint\tantigen\n"+
			"a.txt\tday0\t0\tCMV\n"+
			"b.txt\tday7\t7\tCMV\n")

	col, err := FromMetadataFile(meta, &countingDecoder{}, Options{Lazy: true, Store: true})
	if err != nil {
		t.Fatal(err)
	}

	if col.Len() != 2 {
		t.Fatalf("collection size %d, expected 2", col.Len())
	}
	if cols := col.Metadata().Columns(); len(cols) != 2 || cols[0] != "timepoint" || cols[1] != "antigen" {
		t.Fatalf("metadata columns %v, expected [timepoint antigen]", cols)
	}

	row, err := col.Metadata().RowByID("day7")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := row.Value("timepoint"); !ok || v != "7" {
		t.Errorf("day7 timepoint = %q, expected 7", v)
	}

	// Malformed header: a single column cannot carry path plus sample id.
	bad := writeFile(t, dir, "bad.txt", "onlyonecolumn\n")
	if _, err := FromMetadataFile(bad, &countingDecoder{}, Options{Lazy: true}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for malformed header, got %v", err)
	}
}

func TestCanonicalOrderAndPairs(t *testing.T) {
	dir := t.TempDir()

	// Names chosen so lexical order differs from file order.
	var paths []string
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid.txt", "beta.txt"} {
		paths = append(paths, writeFile(t, dir, name, "data"))
	}

	col, err := FromFiles(paths, &countingDecoder{}, Options{Lazy: true, Store: true})
	if err != nil {
		t.Fatal(err)
	}

	var order []string
	err = col.Each(func(i int, s *Sample) error {
		order = append(order, s.ID())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"zeta", "alpha", "mid", "beta"}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("iteration order %v, expected %v (metadata order, not map order)", order, expected)
		}
	}

	pairs, err := col.Pairs()
	if err != nil {
		t.Fatal(err)
	}

	n := col.Len()
	if len(pairs) != n*(n-1)/2 {
		t.Fatalf("%d pairs for %d samples, expected %d", len(pairs), n, n*(n-1)/2)
	}

	seen := make(map[[2]int]struct{})
	for _, p := range pairs {
		if p.I >= p.J {
			t.Fatalf("pair (%d, %d) violates i < j", p.I, p.J)
		}
		if _, dup := seen[[2]int{p.I, p.J}]; dup {
			t.Fatalf("pair (%d, %d) produced twice", p.I, p.J)
		}
		seen[[2]int{p.I, p.J}] = struct{}{}
	}
}

func TestAccessErrors(t *testing.T) {
	table := NewMetadataTable()
	row, _ := table.CreateRow("only")

	col, err := FromSamples([]*Sample{NewSample(nil, row)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := col.ByIndex(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ByIndex(1): expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := col.ByIndex(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ByIndex(-1): expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := col.Pair(0, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Pair(0, 5): expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := col.ByID("nope"); !errors.Is(err, ErrUnknownSample) {
		t.Errorf("ByID(nope): expected ErrUnknownSample, got %v", err)
	}

	// A failed access must not corrupt valid access.
	if _, err := col.ByID("only"); err != nil {
		t.Errorf("valid access after failed access: %v", err)
	}
}
