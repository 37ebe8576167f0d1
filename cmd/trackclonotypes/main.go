// trackclonotypes builds the longitudinal time-course table for a sample
// collection: one row per clonotype identity seen in at least two samples,
// with its frequency aligned across every timepoint.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/immunotools/repmisc"
	"github.com/immunotools/repmisc/clonoparser"
	"github.com/immunotools/repmisc/sample"
	"github.com/immunotools/repmisc/timecourse"
	"github.com/montanaflynn/stats"
)

func main() {
	var metadataFile, software, outFile string
	var strict bool

	flag.StringVar(&metadataFile, "metadata", "", "Path to a tab-delimited metadata file (file, sample id, then named columns). Row order defines the timepoint order.")
	flag.StringVar(&software, "software", "VDJtools", "Software that produced the clonotype tables. One of: "+clonoparser.LayoutNames())
	flag.StringVar(&outFile, "out", "", "Output path for the time-course table. Defaults to stdout.")
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

	log.Println("Tracking clonotypes across", col.Len(), "samples")

	if err := runAll(col, outFile); err != nil {
		log.Fatalln(err)
	}
}

func runAll(col *sample.Collection, outFile string) error {
	dynamics, err := timecourse.Assemble(col)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	header := []string{"cdr3nt", "cdr3aa", "v", "occupancy", "peak", "meanfreq"}
	header = append(header, col.Metadata().SampleIDs()...)
	fmt.Fprintln(out, strings.Join(header, "\t"))

	peakFreqs := make([]float64, 0, len(dynamics))
	for _, d := range dynamics {
		rep := d.Representative()
		peakFreqs = append(peakFreqs, rep.Freq)

		row := []string{
			rep.CDR3NT,
			rep.CDR3AA,
			rep.V,
			fmt.Sprintf("%d", d.Occupancy()),
			fmt.Sprintf("%d", d.Peak()),
			fmt.Sprintf("%g", d.MeanFrequency()),
		}
		for _, f := range d.Frequencies() {
			row = append(row, fmt.Sprintf("%g", f))
		}

		fmt.Fprintln(out, strings.Join(row, "\t"))
	}

	log.Println("Tracked", len(dynamics), "recurrent clonotypes")

	if len(peakFreqs) > 0 {
		data := stats.LoadRawData(peakFreqs)

		mean, err := data.Mean()
		if err != nil {
			return err
		}

		median, err := data.Median()
		if err != nil {
			return err
		}

		log.Printf("Peak frequency mean %.3g, median %.3g\n", mean, median)
	}

	return nil
}
