package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fbg-xyz/go-fbg/results"
)

func summary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fbg summary <results.json>

Display per-sensor peak shifts and spectral widths from results.

Examples:
  fbg summary results.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("results file required")
	}

	res, err := results.ReadJSON(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	fmt.Printf("Run: %s\n", res.Metadata.RunID)
	fmt.Printf("Status: %s\n", res.Metadata.Status)
	if res.Metadata.Error != "" {
		fmt.Printf("Error: %s\n", res.Metadata.Error)
		return nil
	}
	fmt.Printf("Compute time: %.3fs\n", res.Metadata.ComputeTime)
	fmt.Printf("Band: [%g, %g] nm at %g nm, strain %s, stress %s\n\n",
		res.Simulation.Config.MinBandwidth,
		res.Simulation.Config.MaxBandwidth,
		res.Simulation.Config.Resolution,
		res.Simulation.Mode.Strain,
		res.Simulation.Mode.Stress)

	fmt.Println("Sensor  Original [nm]  Peak [nm]    Shift [nm]  FWHM [nm]")
	for _, s := range res.Summaries {
		if !s.Detected {
			fmt.Printf("%6d  %13.2f  %-11s  %-10s  %s\n", s.Sensor, s.Original, "-", "-", "-")
			continue
		}
		fmt.Printf("%6d  %13.2f  %11.4f  %+10.4f  %9.4f\n",
			s.Sensor, s.Original, *s.Peak, *s.Shift, *s.Width)
	}
	return nil
}
