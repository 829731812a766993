package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
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
	Craft      string             `json:"craft"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	FlightTime float64            `json:"flight_time"`
	Status     string             `json:"status"`
	Body       string             `json:"body"`
	Events     []string           `json:"events"`
	Metrics    map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{
	"time", "x", "y", "vx", "vy", "rot",
	"altitude", "speed", "vertical_speed",
	"mass", "fuel", "thrust", "apoapsis", "periapsis",
}

func (m Sample) row() []string {
	vals := []float64{
		m.Time, m.X, m.Y, m.VX, m.VY, m.Rot,
		m.Altitude, m.Speed, m.Vertical,
		m.Mass, m.Fuel, m.Thrust, m.Apoapsis, m.Periapsis,
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}

// Save writes one run's metadata and samples under a fresh run id.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Craft, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, sm := range samples {
		if err := w.Write(sm.row()); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// List returns metadata for every readable run, oldest first.
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads a run's telemetry rows back. Malformed rows are
// skipped.
func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
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
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if sm, ok := parseSample(record); ok {
			samples = append(samples, sm)
		}
	}
	return samples, nil
}

func parseSample(record []string) (Sample, bool) {
	if len(record) < len(sampleHeader) {
		return Sample{}, false
	}
	vals := make([]float64, len(sampleHeader))
	for i := range vals {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return Sample{}, false
		}
		vals[i] = v
	}
	return Sample{
		Time: vals[0], X: vals[1], Y: vals[2], VX: vals[3], VY: vals[4], Rot: vals[5],
		Altitude: vals[6], Speed: vals[7], Vertical: vals[8],
		Mass: vals[9], Fuel: vals[10], Thrust: vals[11], Apoapsis: vals[12], Periapsis: vals[13],
	}, true
}
