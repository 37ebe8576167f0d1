// cdr3profile accumulates positional amino acid property profiles over the
// CDR3 junctions of one or more samples, split into equal-fraction bins so
// junctions of different lengths stay comparable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/immunotools/repmisc"
	"github.com/immunotools/repmisc/clonoparser"
	"github.com/immunotools/repmisc/profile"
	"github.com/immunotools/repmisc/sample"
)

func main() {
	var metadataFile, software, outFile string
	var bins int
	var weighted, functionalOnly, strict bool

	flag.StringVar(&metadataFile, "metadata", "", "Path to a tab-delimited metadata file (file, sample id, then named columns). If empty, sample table paths are taken from the remaining arguments.")
	flag.StringVar(&software, "software", "VDJtools", "Software that produced the clonotype tables. One of: "+clonoparser.LayoutNames())
	flag.StringVar(&outFile, "out", "", "Output path for the profile table. Defaults to stdout.")
	flag.IntVar(&bins, "bins", 5, "Number of equal-fraction positional bins")
	flag.BoolVar(&weighted, "weighted", false, "Weight each junction by its clonotype frequency instead of counting it once")
	flag.BoolVar(&functionalOnly, "functional", true, "Profile only in-frame, stop-free, complete clonotypes")
	flag.BoolVar(&strict, "strict", true, "Fail on missing sample files instead of skipping them")

	flag.Parse()

	if metadataFile == "" && flag.NArg() == 0 {
		log.Fatalln("Please provide -metadata or at least one sample table path")
	}
	if bins < 1 {
		log.Fatalln("Please provide a positive -bins")
	}

	parser, err := clonoparser.New(software)
	if err != nil {
		log.Fatalln(err)
	}

	col, err := openCollection(metadataFile, flag.Args(), parser, strict)
	if err != nil {
		log.Fatalln(err)
	}

	if err := runAll(col, bins, weighted, functionalOnly, outFile); err != nil {
		log.Fatalln(err)
	}
}

func openCollection(metadataFile string, paths []string, parser *clonoparser.Parser, strict bool) (*sample.Collection, error) {
	opts := sample.Options{Strict: strict, Lazy: true, Store: false}

	if metadataFile != "" {
		return sample.FromMetadataFile(repmisc.ExpandHome(metadataFile), parser, opts)
	}

	expanded := make([]string, 0, len(paths))
	for _, p := range paths {
		expanded = append(expanded, repmisc.ExpandHome(p))
	}

	return sample.FromFiles(expanded, parser, opts)
}

func runAll(col *sample.Collection, bins int, weighted, functionalOnly bool, outFile string) error {
	prof := profile.New(bins, profile.BasicGroups()...)

	sequences := 0
	err := col.Each(func(_ int, s *sample.Sample) error {
		for _, c := range s.Clonotypes() {
			if functionalOnly && !c.Functional() {
				continue
			}

			weight := 1.0
			if weighted {
				weight = c.Freq
			}

			prof.Update(c.CDR3AA, weight)
			sequences++
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Println("Profiled", sequences, "junctions from", col.Len(), "samples into", bins, "bins")

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	fmt.Fprintln(out, strings.Join([]string{"bin", "group", "class", "count", "fraction"}, "\t"))

	for i := 0; i < prof.NumBins(); i++ {
		bin := prof.Bin(i)

		for _, g := range prof.Groups() {
			total := bin.Total(g.Name)

			for _, class := range append(g.Classes(), profile.Unknown) {
				count := bin.Count(g.Name, class)

				fraction := 0.0
				if total > 0 {
					fraction = count / total
				}

				fmt.Fprintln(out, strings.Join([]string{
					fmt.Sprintf("%d", i),
					g.Name,
					class,
					fmt.Sprintf("%g", count),
					fmt.Sprintf("%g", fraction),
				}, "\t"))
			}
		}
	}

	return nil
}
