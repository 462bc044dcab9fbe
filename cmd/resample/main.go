// Command resample resamples a tabulated function read as two columns.
//
// Usage:
//
//	resample [flags] [file]
//
// Input lines hold "x v" pairs separated by blanks or commas; "#" starts a
// comment. Without a file the table is read from stdin. By default the
// function is resampled onto an even grid of round(factor*n) points spanning
// the first and last x; -grid resamples onto the abscissae listed in a file.
//
// Examples:
//
//	resample -factor 4 -order 3 data.txt
//	resample -ext nan -grid targets.txt data.txt
//	resample -threshold 0.01 -plot failure.ps data.txt
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-resample/dsp/resample"
	"github.com/cwbudde/algo-resample/dsp/resample/diag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	factor    float64
	order     int
	policy    resample.Policy
	threshold float64
	noCheck   bool
	quiet     bool
	plot      string
	plotDir   string
	debug     bool
	grid      string
	input     string
	setThresh bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("resample", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&o.factor, "factor", resample.DefaultResolutionFactor, "grid density relative to the number of input samples")
	fs.IntVar(&o.order, "order", 1, "spline degree (1 linear, 3 cubic, at most 5)")
	fs.TextVar(&o.policy, "ext", resample.PolicyError, "out-of-domain policy: error, extrapolate, 0, 1 or nan")
	fs.Float64Var(&o.threshold, "threshold", resample.DefaultEvenEnergyThreshold, "tolerated relative energy deviation, 0 disables the check (0.005 with -grid)")
	fs.BoolVar(&o.noCheck, "no-check", false, "skip the energy-conservation check")
	fs.BoolVar(&o.quiet, "quiet", false, "do not log the conservation report")
	fs.StringVar(&o.plot, "plot", "", "write a PostScript plot of the data to this path on failure")
	fs.StringVar(&o.plotDir, "plot-dir", "", "write a uniquely named PostScript plot into this directory on failure")
	fs.BoolVar(&o.debug, "debug", false, "enable debug logging")
	fs.StringVar(&o.grid, "grid", "", "file listing target abscissae, one per line")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: resample [flags] [file]\n\n")
		fmt.Fprintf(stderr, "Resamples a two-column table (x v) with an interpolating spline\n")
		fmt.Fprintf(stderr, "and checks that the integral over the common range is conserved.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  resample -factor 4 -order 3 data.txt\n")
		fmt.Fprintf(stderr, "  resample -ext nan -grid targets.txt data.txt\n")
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "threshold" {
			o.setThresh = true
		}
	})

	switch fs.NArg() {
	case 0:
	case 1:
		o.input = fs.Arg(0)
	default:
		return o, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		fmt.Fprintf(stderr, "error: %v\n", err)

		return 2
	}

	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	x, v, err := readInput(o.input, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	opts := []resample.Option{
		resample.WithOrder(o.order),
		resample.WithPolicy(o.policy),
		resample.WithVerbose(!o.quiet),
		resample.WithLogger(logger),
	}

	switch {
	case o.noCheck:
		opts = append(opts, resample.WithoutEnergyCheck())
	case o.setThresh || o.grid == "":
		opts = append(opts, resample.WithEnergyThreshold(o.threshold))
	}

	xNew, vNew, err := compute(o, x, v, opts)
	if err != nil {
		if o.plot != "" || o.plotDir != "" {
			diag.Notify(err, diag.PSSink{Path: o.plot, Dir: o.plotDir, Title: err.Error(), Logger: logger})
		}

		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	if err := writeTable(stdout, xNew, vNew); err != nil {
		fmt.Fprintf(stderr, "error: failed to write output: %v\n", err)
		return 1
	}

	return 0
}

func compute(o options, x, v []float64, opts []resample.Option) (xNew, vNew []float64, err error) {
	if o.grid == "" {
		return resample.ResampleEven(x, v, o.factor, opts...)
	}

	f, err := os.Open(o.grid)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	xNew, err = readColumn(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", o.grid, err)
	}

	vNew, err = resample.Resample(x, v, xNew, opts...)

	return xNew, vNew, err
}

func readInput(path string, stdin io.Reader) (x, v []float64, err error) {
	if path == "" {
		return readTable(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	x, v, err = readTable(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return x, v, nil
}

func writeTable(w io.Writer, x, v []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i := range x {
		if _, err := fmt.Fprintf(tw, "%.10g\t%.10g\n", x[i], v[i]); err != nil {
			return err
		}
	}

	return tw.Flush()
}
