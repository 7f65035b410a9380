package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New(profileName, format, sourceDir string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		Format:      format,
		SourceDir:   sourceDir,
		Files:       make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalFiles = len(m.Files)
	s.Failed = len(m.Failures)
	for _, e := range m.Files {
		s.TotalInputBytes += e.SourceSize
		s.TotalOutputBytes += e.Size
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest written by WriteJSON.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version != SupportedManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d", m.Version)
	}
	return &m, nil
}
