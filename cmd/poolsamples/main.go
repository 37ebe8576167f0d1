// poolsamples merges the clonotype tables of several samples into one pooled
// table, matching clonotypes under a chosen identity and combining their
// abundances under a chosen policy.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/immunotools/repmisc"
	"github.com/immunotools/repmisc/clonoparser"
	"github.com/immunotools/repmisc/clonotype"
	"github.com/immunotools/repmisc/pool"
	"github.com/immunotools/repmisc/sample"
)

func main() {
	var metadataFile, software, keyName, policyName, outFile string
	var strict, plot bool

	flag.StringVar(&metadataFile, "metadata", "", "Path to a tab-delimited metadata file (file, sample id, then named columns). If empty, sample table paths are taken from the remaining arguments.")
	flag.StringVar(&software, "software", "VDJtools", "Software that produced the clonotype tables. One of: "+clonoparser.LayoutNames())
	flag.StringVar(&keyName, "key", "strict", "Clonotype matching variant (aa, aaV, aaVJ, nt, ntV, ntVJ, strict)")
	flag.StringVar(&policyName, "policy", "sum", "Combination policy (sum, max, mean, count)")
	flag.StringVar(&outFile, "out", "", "Output path for the pooled table. Defaults to stdout.")
	flag.BoolVar(&strict, "strict", true, "Fail on missing sample files instead of skipping them")
	flag.BoolVar(&plot, "plot", false, "Print a histogram of pooled frequencies to stderr")

	flag.Parse()

	if metadataFile == "" && flag.NArg() == 0 {
		log.Fatalln("Please provide -metadata or at least one sample table path")
	}

	variant, err := clonotype.ParseVariant(keyName)
	if err != nil {
		log.Fatalln(err)
	}

	policy, err := pool.ParsePolicy(policyName)
	if err != nil {
		log.Fatalln(err)
	}

	parser, err := clonoparser.New(software)
	if err != nil {
		log.Fatalln(err)
	}

	col, err := openCollection(metadataFile, flag.Args(), parser, strict)
	if err != nil {
		log.Fatalln(err)
	}

	log.Println("Pooling", col.Len(), "samples under", keyName, "identity with the", policyName, "policy")

	if err := runAll(col, variant, policy, outFile, plot); err != nil {
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

func runAll(col *sample.Collection, variant clonotype.Variant, policy pool.Policy, outFile string, plot bool) error {
	pooled, err := pool.Pool(col, variant, policy)
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

	fmt.Fprintln(out, strings.Join([]string{"count", "freq", "cdr3nt", "cdr3aa", "v", "d", "j", "incidence"}, "\t"))

	freqs := make([]float64, 0, pooled.Len())
	err = pooled.Each(func(_ clonotype.Key, agg *pool.Aggregator) error {
		rep := agg.Representative()
		freqs = append(freqs, agg.Freq())

		_, err := fmt.Fprintln(out, strings.Join([]string{
			fmt.Sprintf("%d", agg.Count()),
			fmt.Sprintf("%g", agg.Freq()),
			rep.CDR3NT,
			rep.CDR3AA,
			rep.V,
			rep.D,
			rep.J,
			fmt.Sprintf("%d", agg.Observations()),
		}, "\t"))

		return err
	})
	if err != nil {
		return err
	}

	log.Println("Pooled", pooled.Len(), "distinct clonotypes")

	if plot && len(freqs) > 0 {
		hist := histogram.Hist(25, freqs)
		if err := histogram.Fprint(os.Stderr, hist, histogram.Linear(5)); err != nil {
			return err
		}
	}

	return nil
}
