// cistat reads newline-separated numbers from a file or stdin and prints
// the requested confidence interval.
package main

import (
	"fmt"
	"os"

	"github.com/yasi-python/cistats/internal/ingest"
	"github.com/yasi-python/cistats/pkg/cli"
	"github.com/yasi-python/cistats/pkg/config"
	"github.com/yasi-python/cistats/pkg/decision"
	"github.com/yasi-python/cistats/pkg/interval"
	"github.com/yasi-python/cistats/pkg/stats"
)

func main() {
	args := cli.Parse()
	conf, err := config.ParseConfidence(args.Level, args.Side)
	if err != nil {
		fatal(err)
	}
	samples, err := readInput(args.File)
	if err != nil {
		fatal(err)
	}

	switch args.Cmd {
	case cli.CmdMean:
		kind, err := stats.ParseMeanKind(args.Kind)
		if err != nil {
			fatal(err)
		}
		ci, err := stats.MeanCI(kind, conf, samples)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("%s mean of %d samples, %s: %s\n", kind, len(samples), conf, ci)
	case cli.CmdQuantile:
		ci, err := stats.QuantileCI(conf, samples, args.Quantile)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("quantile %g of %d samples, %s: %s\n", args.Quantile, len(samples), conf, ci)
	case cli.CmdProportion:
		ci, err := stats.ProportionCIIf(conf, samples, func(x float64) bool { return x > args.SuccessAbove })
		if err != nil {
			fatal(err)
		}
		fmt.Printf("rate of samples above %g, %s: %s\n", args.SuccessAbove, conf, ci)
	case cli.CmdCompare:
		other, err := ingest.ReadSamples(args.CompareWith)
		if err != nil {
			fatal(err)
		}
		var ci interval.Interval[float64]
		if args.Paired {
			ci, err = stats.PairedCI(conf, samples, other)
		} else {
			ci, err = stats.UnpairedCI(conf, samples, other)
		}
		if err != nil {
			fatal(err)
		}
		fmt.Printf("mean difference, %s: %s (%s)\n", conf, ci, decision.FromDifference(ci))
	default:
		cli.Usage()
		os.Exit(2)
	}
}

func readInput(path string) ([]float64, error) {
	if path == "" || path == "-" {
		return ingest.ParseSamples(os.Stdin)
	}
	return ingest.ReadSamples(path)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "cistat:", err)
	os.Exit(1)
}
