package results

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON saves a run's results to path as indented JSON. Undetected
// summary fields come out as null, never NaN.
func WriteJSON(r *Results, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// ReadJSON loads a results file previously written by WriteJSON.
func ReadJSON(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	r := new(Results)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("decode results %s: %w", path, err)
	}
	return r, nil
}
