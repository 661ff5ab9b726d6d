package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fbg-xyz/go-fbg/osa"
	"github.com/fbg-xyz/go-fbg/profile"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	buildRequest := requestFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fbg validate [options]

Validate simulation parameters, array layout and dataset coverage without
computing any spectrum. Accepts the same options as simulate.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := buildRequest()
	if err != nil {
		return err
	}

	sim, err := osa.NewSimulator(req.Config)
	if err != nil {
		return err
	}
	if req.DatasetPath != "" {
		if err := sim.FromFile(req.DatasetPath, req.LoadConfig); err != nil {
			return err
		}
	}
	prof, err := profile.New(sim.Dataset(), req.Mode)
	if err != nil {
		return err
	}
	if err := prof.CheckCoverage(req.Config.Layout); err != nil {
		return err
	}

	fmt.Printf("OK: %d sensors, band [%g, %g] nm, %d grid points\n",
		req.Config.Layout.Count, req.Config.MinBandwidth, req.Config.MaxBandwidth, len(sim.Grid()))
	if n := len(sim.Dataset()); n > 0 {
		min, max := sim.Dataset().Range()
		fmt.Printf("Dataset: %d samples covering [%g, %g] mm\n", n, min, max)
	}
	fmt.Printf("Strain: %s, stress: %s\n", req.Mode.Strain, req.Mode.Stress)
	return nil
}
