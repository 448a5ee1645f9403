package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/approx/internal/ode"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
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
	ID        string             `json:"id"`
	Problem   string             `json:"problem"`
	Method    string             `json:"method"`
	Timestamp time.Time          `json:"timestamp"`
	StepSize  float64            `json:"step_size"`
	T0        float64            `json:"t0"`
	Tf        float64            `json:"tf"`
	X0        float64            `json:"x0"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// MarshalJSON keeps non-finite metric values, which a blown-up run produces.
func (m RunMetadata) MarshalJSON() ([]byte, error) {
	type plain RunMetadata
	return json.Marshal(struct {
		plain
		Metrics map[string]Float `json:"metrics"`
	}{plain(m), toFloatMap(m.Metrics)})
}

func (m *RunMetadata) UnmarshalJSON(data []byte) error {
	type plain RunMetadata
	aux := struct {
		*plain
		Metrics map[string]Float `json:"metrics"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Metrics = fromFloatMap(aux.Metrics)
	return nil
}

// Save writes the run under a fresh ID and returns it. exact may be nil;
// when set, an exact column is stored next to the numerical solution.
func (s *Store) Save(meta RunMetadata, tr *ode.Trajectory, exact func(float64) float64) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%s_%d", meta.Problem, meta.Method, now.UnixNano())
	meta.Timestamp = now
	meta.Steps = tr.Len() - 1

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeJSON(filepath.Join(runDir, metadataFile), meta)
	if err == nil {
		err = writeTrajectory(filepath.Join(runDir, trajectoryFile), tr, exact)
	}
	if err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("saving run %s: %w", meta.ID, err)
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTrajectory(path string, tr *ode.Trajectory, exact func(float64) float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"time", "x"}
	if exact != nil {
		header = append(header, "exact")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range tr.Times {
		row := []string{formatFloat(tr.Times[i]), formatFloat(tr.States[i])}
		if exact != nil {
			row = append(row, formatFloat(exact(tr.Times[i])))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
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

// LoadTrajectory reads a stored trajectory. The exact column is returned
// when the run recorded one and is nil otherwise.
func (s *Store) LoadTrajectory(runID string) (*ode.Trajectory, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	tr := &ode.Trajectory{Times: []float64{}, States: []float64{}}
	if len(records) < 2 {
		return tr, nil, nil
	}

	hasExact := len(records[0]) > 2
	var exact []float64
	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, nil, fmt.Errorf("%s: row %d: expected at least 2 fields", runID, i+1)
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: row %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		tr.Times = append(tr.Times, vals[0])
		tr.States = append(tr.States, vals[1])
		if hasExact && len(vals) > 2 {
			exact = append(exact, vals[2])
		}
	}

	return tr, exact, nil
}

type runExport struct {
	Meta   *RunMetadata `json:"meta"`
	Times  []Float      `json:"times"`
	States []Float      `json:"states"`
	Exact  []Float      `json:"exact,omitempty"`
}

// ExportJSON writes metadata and samples as a single JSON document.
// Non-finite samples are written as "NaN", "+Inf" or "-Inf".
func ExportJSON(w io.Writer, meta *RunMetadata, tr *ode.Trajectory, exact []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{
		Meta:   meta,
		Times:  toFloats(tr.Times),
		States: toFloats(tr.States),
		Exact:  toFloats(exact),
	})
}

// ExportCSV writes the trajectory as time,x[,exact] rows.
func ExportCSV(w io.Writer, tr *ode.Trajectory, exact []float64) error {
	cw := csv.NewWriter(w)
	header := []string{"time", "x"}
	if exact != nil {
		header = append(header, "exact")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range tr.Times {
		row := []string{formatFloat(tr.Times[i]), formatFloat(tr.States[i])}
		if i < len(exact) {
			row = append(row, formatFloat(exact[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
