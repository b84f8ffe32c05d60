package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/synclattice/internal/lattice"
)

type ExportData struct {
	Metadata RunMetadata      `json:"metadata"`
	Samples  []lattice.Sample `json:"samples"`
	Grid     *lattice.Grid    `json:"grid,omitempty"`
	Manifest string           `json:"manifest,omitempty"`
}

// ExportJSON writes everything stored for runID as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string, withGrid bool) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadMetrics(runID)
	if err != nil {
		return err
	}
	manifest, err := s.LoadManifest(runID)
	if err != nil {
		return err
	}

	data := ExportData{Metadata: *meta, Samples: samples, Manifest: manifest}
	if withGrid {
		if data.Grid, err = s.LoadGrid(runID); err != nil {
			return err
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
