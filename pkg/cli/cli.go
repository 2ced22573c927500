package cli

import (
	"flag"
	"fmt"
)

type Command int

const (
	CmdMean Command = iota
	CmdQuantile
	CmdProportion
	CmdCompare
)

type Args struct {
	Cmd          Command
	Kind         string
	Level        float64
	Side         string
	Quantile     float64
	SuccessAbove float64
	CompareWith  string
	Paired       bool
	File         string
}

func Parse() Args {
	var (
		kind     = flag.String("kind", "arithmetic", "mean kind: arithmetic|geometric|harmonic")
		level    = flag.Float64("level", 0.95, "confidence level in (0, 1)")
		side     = flag.String("side", "two", "interval side: two|upper|lower")
		quantile = flag.Float64("quantile", 0, "compute a quantile interval at this quantile")
		median   = flag.Bool("median", false, "compute the median interval (quantile 0.5)")
		above    = flag.Float64("success-above", 0, "compute a success-rate interval, counting samples above this threshold")
		prop     = flag.Bool("proportion", false, "compute a success-rate interval (success means above -success-above)")
		compare  = flag.String("compare", "", "compare against samples in this second file")
		paired   = flag.Bool("paired", false, "treat compared samples as paired")
	)
	flag.Parse()
	out := Args{
		Kind: *kind, Level: *level, Side: *side,
		Quantile: *quantile, SuccessAbove: *above,
		CompareWith: *compare, Paired: *paired,
	}
	if flag.NArg() > 0 {
		out.File = flag.Arg(0)
	}
	switch {
	case *median:
		out.Cmd = CmdQuantile
		out.Quantile = 0.5
	case *quantile != 0:
		out.Cmd = CmdQuantile
	case *prop || *above != 0:
		out.Cmd = CmdProportion
	case *compare != "":
		out.Cmd = CmdCompare
	default:
		out.Cmd = CmdMean
	}
	return out
}

func Usage() {
	fmt.Println("Use cistat [-kind k] [-level l] [-side s] [-median | -quantile q | -proportion -success-above x | -compare fileB [-paired]] [file]")
}
