package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"lsys-turtle/internal/jobs"
	"lsys-turtle/internal/vertexbuf"
)

// ManifestEntry represents one system in the output manifest.
type ManifestEntry struct {
	Name     string                 `json:"name"`
	Source   string                 `json:"source"`
	Mode     string                 `json:"mode"`
	Angle    float64                `json:"angle"`
	Step     float64                `json:"step"`
	Success  bool                   `json:"success"`
	Error    string                 `json:"error,omitempty"`
	Symbols  int                    `json:"symbols"`
	Ignored  int                    `json:"ignored"`
	Geometry []vertexbuf.Descriptor `json:"geometry,omitempty"`
	Preview  string                 `json:"preview,omitempty"`
}

// WriteManifest writes manifest.json, creating its directory.
// results must be in the same order as list.
func WriteManifest(path string, list []jobs.Job, results []Result) error {
	if len(list) != len(results) {
		return fmt.Errorf("batch: %d jobs but %d results", len(list), len(results))
	}
	entries := make([]ManifestEntry, len(list))
	for i, j := range list {
		r := results[i]
		entries[i] = ManifestEntry{
			Name:     j.Name,
			Source:   j.Source(),
			Mode:     r.Mode,
			Angle:    r.Angle,
			Step:     r.Step,
			Success:  r.Success,
			Error:    r.Error,
			Symbols:  r.Symbols,
			Ignored:  r.Ignored,
			Geometry: r.Geometry,
			Preview:  r.Preview,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: manifest dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
