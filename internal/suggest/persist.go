package suggest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTable persists the table as a JSON array of row objects, one object
// per row, creating parent directories as needed. This artifact is consumed
// by the separate metrics step and the chart renderer.
func WriteTable(path string, rows []Row) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode suggested players table: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadTable loads a previously persisted table.
func ReadTable(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode suggested players table: %w", err)
	}
	return rows, nil
}
