package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fbg-xyz/go-fbg/osa"
	"github.com/fbg-xyz/go-fbg/results"
)

func simulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	buildRequest := requestFlags(fs)
	output := fs.String("output", "", "Output file for results (required)")
	quiet := fs.Bool("quiet", false, "Suppress progress output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fbg simulate [options]

Simulate the reflectance spectrum of an FBG sensor array.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Uniform strain, default array
  fbg simulate --strain uniform --strain-value 1e-4 --output results.json

  # Measured strain and stress profile, SI-unit positions
  fbg simulate --data sample.txt --si --strain non-uniform --stress included \
      --undeformed --output results.json

  # Temperature emulation against a host material
  fbg simulate --temperature 333.15 --host-expansion 5e-5 --output results.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	req, err := buildRequest()
	if err != nil {
		return err
	}
	if !*quiet {
		req.Progress = func(pct int) { log.Printf("progress %d%%", pct) }
	}

	runner := osa.NewRunner()
	runID, done, err := runner.Submit(req)
	if err != nil {
		return err
	}
	outcome := <-done

	res := results.Build(runID, req, outcome.Output, outcome.Err, outcome.Elapsed)
	if err := results.WriteJSON(res, *output); err != nil {
		return err
	}

	if outcome.Err != nil {
		return fmt.Errorf("simulation has failed, reason: %v", outcome.Err)
	}
	if !*quiet {
		log.Printf("run %s completed in %.3fs, results written to %s", runID, outcome.Elapsed.Seconds(), *output)
		for _, s := range res.Summaries {
			if !s.Detected {
				log.Printf("sensor %d (%g nm): no detectable peak", s.Sensor, s.Original)
				continue
			}
			log.Printf("sensor %d (%g nm): shift %+.4f nm, width %.4f nm", s.Sensor, s.Original, *s.Shift, *s.Width)
		}
	}
	return nil
}
