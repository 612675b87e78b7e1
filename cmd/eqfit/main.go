// Command eqfit derives parametric peaking EQ bands from a calibration
// measurement file.
//
// Usage:
//
//	eqfit [flags] calibration.txt
//
// The input is line-oriented calibration text: frequency first, gain in dB
// last, ascending by frequency. Decimal commas are accepted.
//
// Examples:
//
//	eqfit measurement.txt
//	eqfit -strategy auto -bands 6 measurement.txt
//	eqfit -strategy perpoint measurement.txt
//	eqfit -strategy grid -first 31.5 -bands 10 -bpo 1 measurement.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-roomeq/dsp/filter/design"
	"github.com/cwbudde/algo-roomeq/eq"
	"github.com/cwbudde/algo-roomeq/eq/fit"
)

func main() {
	strategy := flag.String("strategy", "auto", "fitting strategy: auto, perpoint or grid")
	bands := flag.Int("bands", 8, "maximum band count (auto) or grid band count (grid)")
	sampleRate := flag.Float64("rate", 44100, "sample rate in Hz")
	minFreq := flag.Float64("min", 20, "lower bound of the correction range in Hz")
	maxFreq := flag.Float64("max", 20000, "upper bound of the correction range in Hz")
	maxGain := flag.Float64("maxgain", 12, "gain clamp in dB, applied symmetrically")
	first := flag.Float64("first", 31.5, "first band center in Hz (grid strategy)")
	bpo := flag.Float64("bpo", 1, "bands per octave (grid strategy)")
	round := flag.Bool("round", false, "round grid centers to two significant digits")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqfit [flags] calibration.txt\n\n")
		fmt.Fprintf(os.Stderr, "Fits peaking EQ bands to a measured calibration curve.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqfit measurement.txt\n")
		fmt.Fprintf(os.Stderr, "  eqfit -strategy grid -first 31.5 -bands 10 measurement.txt\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	curve, err := loadCurve(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if curve.Len() == 0 {
		fmt.Fprintf(os.Stderr, "error: no usable lines in %s\n", flag.Arg(0))
		os.Exit(1)
	}

	cfg := fit.DefaultConfig()
	cfg.SampleRate = *sampleRate
	cfg.MinFrequency = *minFreq
	cfg.MaxFrequency = *maxFreq
	cfg.MinGain = -*maxGain
	cfg.MaxGain = *maxGain

	fitter, err := fit.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var result []design.PeakingBand

	switch *strategy {
	case "auto":
		result, err = fitter.FitAuto(curve, *bands)
	case "perpoint":
		result, err = fitter.FitPerPoint(curve, false)
	case "grid":
		result, err = fitter.FitConstantBandwidth(curve, fit.ConstantBandwidthOptions{
			FirstFrequency:   *first,
			BandCount:        *bands,
			BandsPerOctave:   *bpo,
			RoundFrequencies: *round,
		})
	default:
		fmt.Fprintf(os.Stderr, "error: unknown strategy %q\n", *strategy)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printBands(result)
}

func loadCurve(path string) (*eq.Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return eq.ParseCalibration(f)
}

func printBands(bands []design.PeakingBand) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Band\tFrequency [Hz]\tQ\tGain [dB]\n")
	fmt.Fprintf(tw, "----\t--------------\t-\t---------\n")

	for i, band := range bands {
		fmt.Fprintf(tw, "%d\t%.1f\t%.3f\t%+.1f\n", i+1, band.Frequency, band.Q, band.GainDB)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
