// diversitystat reports diversity indices for every sample in a collection,
// one row per sample with its metadata columns carried through.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/immunotools/repmisc"
	"github.com/immunotools/repmisc/clonoparser"
	"github.com/immunotools/repmisc/diversity"
	"github.com/immunotools/repmisc/sample"
)

func main() {
	var metadataFile, software, outFile string
	var strict bool

	flag.StringVar(&metadataFile, "metadata", "", "Path to a tab-delimited metadata file (file, sample id, then named columns)")
	flag.StringVar(&software, "software", "VDJtools", "Software that produced the clonotype tables. One of: "+clonoparser.LayoutNames())
	flag.StringVar(&outFile, "out", "", "Output path for the diversity table. Defaults to stdout.")
	flag.BoolVar(&strict, "strict", true, "Fail on missing sample files instead of skipping them")

	flag.Parse()

	if metadataFile == "" {
		log.Fatalln("Please provide -metadata")
	}

	parser, err := clonoparser.New(software)
	if err != nil {
		log.Fatalln(err)
	}

	col, err := sample.FromMetadataFile(repmisc.ExpandHome(metadataFile), parser, sample.Options{Strict: strict, Lazy: true, Store: false})
	if err != nil {
		log.Fatalln(err)
	}

	if err := runAll(col, outFile); err != nil {
		log.Fatalln(err)
	}
}

func runAll(col *sample.Collection, outFile string) error {
	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	header := []string{"sample.id", "clonotypes", "shannon.wiener", "normalized.shannon.wiener", "inverse.simpson"}
	header = append(header, col.Metadata().Columns()...)
	fmt.Fprintln(out, strings.Join(header, "\t"))

	return col.Each(func(_ int, s *sample.Sample) error {
		freqs := make([]float64, 0, len(s.Clonotypes()))
		for _, c := range s.Clonotypes() {
			freqs = append(freqs, c.Freq)
		}

		d := diversity.FromFrequencies(freqs)

		row := []string{
			s.ID(),
			fmt.Sprintf("%d", d.Observed),
			fmt.Sprintf("%g", d.ShannonWiener),
			fmt.Sprintf("%g", d.NormalizedShannonWiener),
			fmt.Sprintf("%g", d.InverseSimpson),
		}
		row = append(row, s.Metadata().Values...)

		_, err := fmt.Fprintln(out, strings.Join(row, "\t"))

		return err
	})
}
