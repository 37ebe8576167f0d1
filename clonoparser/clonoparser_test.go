package clonoparser

import (
	"strings"
	"testing"
)

func TestNativeLayout(t *testing.T) {
	parser, err := New("VDJtools")
	if err != nil {
		t.Fatal(err)
	}

	table := "#count\tfreq\tcdr3nt\tcdr3aa\tv\td\tj\n" +
		"150\t0.15\tTGTGCCAGC\tCAS\tTRBV9\t.\tTRBJ2-7\n" +
		"50\t0.05\tTGTGCCAAA\tCAK\tTRBV28\tTRBD1\tTRBJ1-1\n"

	clonotypes, err := parser.Decode(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}

	if len(clonotypes) != 2 {
		t.Fatalf("decoded %d clonotypes, expected 2", len(clonotypes))
	}

	c := clonotypes[0]
	if c.Count != 150 || c.Freq != 0.15 ||
		c.CDR3NT != "TGTGCCAGC" || c.CDR3AA != "CAS" ||
		c.V != "TRBV9" || c.D != "" || c.J != "TRBJ2-7" {
		t.Errorf("first clonotype mismatch: %+v", c)
	}
	if !c.InFrame || !c.NoStop || !c.Complete {
		t.Errorf("a clean in-frame junction must be marked functional: %+v", c)
	}
}

func TestMiTCRLayout(t *testing.T) {
	parser, err := New("MiTCR")
	if err != nil {
		t.Fatal(err)
	}

	row := []string{"120", "0.12", "TGTGCC", "x", "x", "CA", "x", "TRBV9", "TRBD1", "TRBJ2-7"}
	c, err := parser.ParseRow(row)
	if err != nil {
		t.Fatal(err)
	}

	if c.Count != 120 || c.Freq != 0.12 || c.CDR3NT != "TGTGCC" || c.CDR3AA != "CA" ||
		c.V != "TRBV9" || c.D != "TRBD1" || c.J != "TRBJ2-7" {
		t.Errorf("row mismatch: %+v", c)
	}
}

func TestMiXCRSegmentHits(t *testing.T) {
	for _, tc := range []struct {
		hits     string
		expected string
	}{
		{"TRBV9*00(1250)", "TRBV9*00"},
		{"TRBV9*00(1250),TRBV9-2*00(1100)", "TRBV9*00"},
		{"TRBV9", "TRBV9"},
		{"", ""},
	} {
		if got := bestSegmentHit(tc.hits); got != tc.expected {
			t.Errorf("bestSegmentHit(%q) = %q, expected %q", tc.hits, got, tc.expected)
		}
	}
}

func TestUnknownLayout(t *testing.T) {
	if _, err := New("NoSuchSoftware"); err == nil {
		t.Error("expected an error for an unknown layout name")
	}
}

func TestShortRow(t *testing.T) {
	parser, err := New("MiTCR")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.ParseRow([]string{"120", "0.12"}); err == nil {
		t.Error("expected an error for a truncated row")
	}
}

func TestStopAndIncompleteFlags(t *testing.T) {
	parser, err := New("VDJtools")
	if err != nil {
		t.Fatal(err)
	}

	table := "count\tfreq\tcdr3nt\tcdr3aa\tv\td\tj\n" +
		"10\t0.1\tTGTGC\tCA*S\tTRBV9\t.\tTRBJ2-7\n"

	clonotypes, err := parser.Decode(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	if len(clonotypes) != 1 {
		t.Fatalf("decoded %d clonotypes, expected 1", len(clonotypes))
	}

	c := clonotypes[0]
	if c.InFrame {
		t.Error("5-nucleotide junction must be out of frame")
	}
	if c.NoStop {
		t.Error("a '*' in the amino acid junction must clear NoStop")
	}
	if c.Functional() {
		t.Error("an out-of-frame stop-containing clonotype is not functional")
	}
}
