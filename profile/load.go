package profile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fbg-xyz/go-fbg/fiber"
)

// LoadConfig configures dataset parsing.
type LoadConfig struct {
	// Delimiter separates columns. Zero means any run of whitespace.
	Delimiter rune
	// Comment marks lines to skip when it is the first non-blank character.
	Comment string
	// SkipRows is the number of leading rows (headers) to discard.
	SkipRows int
	// SIUnits converts positions from meters to millimeters after parsing.
	SIUnits bool
}

// DefaultLoadConfig matches the instrument export format: whitespace-delimited
// columns, '#' comments, positions already in mm.
func DefaultLoadConfig() LoadConfig {
	return LoadConfig{Comment: "#"}
}

// Load reads a delimited text table of (position, strain[, stress]) rows from
// a file. Rows must be ordered by strictly increasing position.
func Load(filepath string, config LoadConfig) (Dataset, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fiber.ErrFileAccess, err)
	}
	defer f.Close()

	data, err := LoadReader(f, config)
	if err != nil {
		return nil, fmt.Errorf("%v (in %s)", err, filepath)
	}
	return data, nil
}

// LoadReader parses a dataset from r. See Load.
func LoadReader(r io.Reader, config LoadConfig) (Dataset, error) {
	scanner := bufio.NewScanner(r)
	var data Dataset
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		row++
		if row <= config.SkipRows || line == "" {
			continue
		}
		if config.Comment != "" && strings.HasPrefix(line, config.Comment) {
			continue
		}

		var cols []string
		if config.Delimiter == 0 {
			cols = strings.Fields(line)
		} else {
			cols = strings.Split(line, string(config.Delimiter))
		}
		if len(cols) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d columns, need position and strain",
				fiber.ErrDataRange, row, len(cols))
		}

		sample, err := parseSample(cols)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", fiber.ErrDataRange, row, err)
		}
		if config.SIUnits {
			sample.Position *= 1000 // m -> mm
		}
		if n := len(data); n > 0 && sample.Position <= data[n-1].Position {
			return nil, fmt.Errorf("%w: row %d: positions must be strictly increasing (%g after %g)",
				fiber.ErrDataRange, row, sample.Position, data[n-1].Position)
		}
		data = append(data, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", fiber.ErrFileAccess, err)
	}
	return data, nil
}

func parseSample(cols []string) (Sample, error) {
	var s Sample
	var err error
	if s.Position, err = strconv.ParseFloat(strings.TrimSpace(cols[0]), 64); err != nil {
		return s, fmt.Errorf("bad position %q", cols[0])
	}
	if s.Strain, err = strconv.ParseFloat(strings.TrimSpace(cols[1]), 64); err != nil {
		return s, fmt.Errorf("bad strain %q", cols[1])
	}
	if len(cols) > 2 {
		if s.Stress, err = strconv.ParseFloat(strings.TrimSpace(cols[2]), 64); err != nil {
			return s, fmt.Errorf("bad stress %q", cols[2])
		}
	}
	return s, nil
}
