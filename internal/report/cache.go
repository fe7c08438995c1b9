package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// loadCache reads a persisted report. Keys round-trip structurally:
// missing_keys come back as ordered key records, counts and percentages
// as numbers.
func loadCache(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cached report: %w", err)
	}
	defer func() { _ = f.Close() }()

	var rows []Row
	if err := json.NewDecoder(f).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode cached report %q: %w", path, err)
	}
	return &Report{rows: rows}, nil
}

// saveCache persists report rows, creating parent directories as needed.
func saveCache(path string, rows []Row) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode cached report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	return nil
}
