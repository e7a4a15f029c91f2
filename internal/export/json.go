// Package export writes backup documents for the full tracker state.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sadopc/mastery/internal/store"
)

// ToJSON writes the full-state snapshot as an indented JSON document.
func ToJSON(snap store.Snapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
