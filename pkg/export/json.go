package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tholloway/roguecore/pkg/engine"
)

// ExportJSON serializes the complete world with indentation for human
// inspection.
func ExportJSON(w *engine.World) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("world cannot be nil")
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal world to JSON: %w", err)
	}
	return data, nil
}

// ExportJSONCompact serializes the world without whitespace.
func ExportJSONCompact(w *engine.World) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("world cannot be nil")
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal world to JSON: %w", err)
	}
	return data, nil
}

// SaveJSONToFile writes the indented JSON export to filepath.
func SaveJSONToFile(w *engine.World, filepath string) error {
	data, err := ExportJSON(w)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

// ExportTurnResultJSON serializes one TurnResult, the per-turn payload a
// host receives, for golden-file comparisons and bug reports.
func ExportTurnResultJSON(result *engine.TurnResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("turn result cannot be nil")
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal turn result to JSON: %w", err)
	}
	return data, nil
}
