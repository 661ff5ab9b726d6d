package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fbg-xyz/go-fbg/sweep"
)

func sweepCmd(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	buildRequest := requestFlags(fs)
	param := fs.String("param", "strain", "Swept parameter: strain or temperature")
	min := fs.Float64("sweep-min", 0, "Lower bound of the swept range")
	max := fs.Float64("sweep-max", 1e-4, "Upper bound of the swept range")
	steps := fs.Int("steps", 11, "Number of evenly spaced sweep points")
	sensor := fs.Int("sensor", 0, "Sensor whose peak shift is tracked (0 = mean over the array)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fbg sweep [options]

Sweep a perturbation over a range and report the peak shift at each value:
a calibration curve for the array.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Strain calibration curve for the first sensor
  fbg sweep --param strain --sweep-min 0 --sweep-max 2e-4 --steps 21 --sensor 1

  # Temperature response of the whole array
  fbg sweep --param temperature --sweep-min 293.15 --sweep-max 353.15 --steps 13
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := buildRequest()
	if err != nil {
		return err
	}

	scorer := sweep.MeanShiftScorer()
	if *sensor > 0 {
		scorer = sweep.ShiftScorer(*sensor)
	}
	analyzer := sweep.NewAnalyzer(req.Config, scorer).WithWorkers(req.Workers)

	var result *sweep.Result
	switch *param {
	case "strain":
		result, err = analyzer.SweepStrainRange(*min, *max, *steps)
	case "temperature":
		result, err = analyzer.SweepTemperatureRange(*min, *max, *steps)
	default:
		return fmt.Errorf("unknown sweep parameter %q (want strain or temperature)", *param)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%-14s %s\n", result.Parameter, "shift (nm)")
	for i, val := range result.Values {
		fmt.Printf("%-14g %+.4f\n", val, result.Scores[i])
	}
	fmt.Printf("\nlargest shift %+.4f nm at %s = %g\n", result.Best.Score, result.Parameter, result.Best.Value)
	return nil
}
