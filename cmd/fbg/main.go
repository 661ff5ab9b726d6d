package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "simulate":
		if err := simulate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "plot":
		if err := plotCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sweep":
		if err := sweepCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "summary":
		if err := summary(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("fbg version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fbg - FBG sensor array spectrum simulator

Usage:
  fbg <command> [options]

Commands:
  simulate   Run an FBG array simulation
  validate   Validate parameters and dataset without simulating
  plot       Render spectra from simulation results
  sweep      Sweep strain or temperature and report the calibration curve
  summary    Display per-sensor peak shifts and widths
  help       Show this help message
  version    Show version information

Examples:
  # Uniform strain over the default three-sensor array
  fbg simulate --strain uniform --strain-value 1e-4 --output results.json

  # Non-uniform strain and transverse stress from a measured dataset
  fbg simulate --data sample.txt --strain non-uniform --stress included \
      --undeformed --output results.json

  # Render the spectra
  fbg plot results.json --output spectrum.png

  # Peak summary table
  fbg summary results.json

For command-specific help, run:
  fbg <command> --help`)
}
