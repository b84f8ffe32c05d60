package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/synclattice/internal/lattice"
	"github.com/san-kum/synclattice/internal/sim"
)

const (
	metadataFile = "metadata.json"
	metricsFile  = "metrics.csv"
	gridFile     = "grid.json"
	manifestFile = "manifest.txt"
	anchorsFile  = "anchors.json"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	GridSize   int                `json:"grid_size"`
	Coupling   float64            `json:"coupling"`
	Noise      float64            `json:"noise"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Injections int                `json:"injections"`
	Anchors    int                `json:"anchors"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata, the metric series, the
// final grid and, when anchors were placed, their manifests.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Label == "" {
		meta.Label = "run"
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Label, now.UnixNano())
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics
	for _, m := range result.Manifests {
		meta.Anchors += m.Placed()
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, metricsFile), result.Samples); err != nil {
		return "", err
	}
	if result.Final != nil {
		if err := writeJSON(filepath.Join(runDir, gridFile), result.Final); err != nil {
			return "", err
		}
	}
	if len(result.Manifests) > 0 {
		var sb strings.Builder
		var anchors []lattice.Anchor
		for _, m := range result.Manifests {
			sb.WriteString(m.String())
			anchors = append(anchors, m.Anchors...)
		}
		if err := os.WriteFile(filepath.Join(runDir, manifestFile), []byte(sb.String()), 0644); err != nil {
			return "", err
		}
		if err := writeJSON(filepath.Join(runDir, anchorsFile), anchors); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []lattice.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "coherence", "entropy"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatUint(smp.Step, 10),
			strconv.FormatFloat(smp.Coherence, 'f', 6, 64),
			strconv.FormatFloat(smp.Entropy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadMetrics reads the stored metric series. Malformed rows are skipped.
func (s *Store) LoadMetrics(runID string) ([]lattice.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, metricsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []lattice.Sample{}, nil
	}

	samples := make([]lattice.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		step, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			continue
		}
		coh, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		ent, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		samples = append(samples, lattice.Sample{Coherence: coh, Entropy: ent, Step: step})
	}
	return samples, nil
}

func (s *Store) LoadGrid(runID string) (*lattice.Grid, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, gridFile))
	if err != nil {
		return nil, err
	}
	var g lattice.Grid
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	if len(g.Nodes) != g.Size*g.Size {
		return nil, fmt.Errorf("%w: %d nodes for size %d", lattice.ErrGridMismatch, len(g.Nodes), g.Size)
	}
	return &g, nil
}

// LoadManifest returns the stored anchor report, or "" when the run placed
// no anchors.
func (s *Store) LoadManifest(runID string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, manifestFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadAnchors returns every anchor placed during the run, in placement order.
func (s *Store) LoadAnchors(runID string) ([]lattice.Anchor, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, anchorsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var anchors []lattice.Anchor
	if err := json.Unmarshal(data, &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}
