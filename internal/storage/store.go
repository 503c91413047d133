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

	"github.com/san-kum/pettoy/internal/automation"
	"github.com/san-kum/pettoy/internal/metrics"
)

// Store archives headless session reports, one directory per session.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SessionMetadata struct {
	ID          string             `json:"id"`
	Source      string             `json:"source"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Duration    float64            `json:"duration"`
	Frames      int                `json:"frames"`
	Accepted    int                `json:"accepted"`
	Debounced   int                `json:"debounced"`
	Ignored     int                `json:"ignored"`
	Actions     map[string]int     `json:"actions"`
	PeakEnergy  float64            `json:"peak_energy"`
	FinalEnergy float64            `json:"final_energy"`
	FinalShapes int                `json:"final_shapes"`
	Exited      bool               `json:"exited"`
	Metrics     map[string]float64 `json:"metrics"`
}

var idReplacer = strings.NewReplacer("/", "-", "\\", "-", " ", "-")

// Save writes metadata.json and series.csv for report and returns the
// session id. source names what drove the session (a scenario or "random").
func (s *Store) Save(source string, report *automation.Report) (string, error) {
	now := time.Now()
	source = idReplacer.Replace(source)
	id := fmt.Sprintf("%s_%d_%d", source, report.Seed, now.UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	actions := make(map[string]int, len(report.Stats.Actions))
	for a, n := range report.Stats.Actions {
		actions[a.String()] = n
	}

	meta := SessionMetadata{
		ID:          id,
		Source:      source,
		Timestamp:   now,
		Seed:        report.Seed,
		Duration:    report.Stats.Elapsed,
		Frames:      report.Stats.Frames,
		Accepted:    report.Stats.Accepted,
		Debounced:   report.Stats.Debounced,
		Ignored:     report.Stats.Ignored,
		Actions:     actions,
		PeakEnergy:  report.Stats.PeakEnergy,
		FinalEnergy: report.Final.Energy,
		FinalShapes: report.Final.Shapes,
		Exited:      report.Exited,
		Metrics:     report.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if report.Series == nil {
		return id, nil
	}
	if err := writeSeries(filepath.Join(dir, "series.csv"), report.Series); err != nil {
		return "", err
	}
	return id, nil
}

func writeSeries(path string, series *metrics.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "energy", "shapes"}); err != nil {
		return err
	}
	for i := range series.Times {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 3, 64),
			strconv.FormatFloat(series.Energy[i], 'f', 6, 64),
			strconv.Itoa(int(series.Shapes[i])),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable session, oldest first. A missing base
// directory is an empty archive.
func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sessions = append(sessions, *meta)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.Before(sessions[j].Timestamp)
	})
	return sessions, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads back the per-second samples of a session. Malformed
// rows are skipped.
func (s *Store) LoadSeries(id string) (*metrics.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "series.csv"))
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

	series := &metrics.Series{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}
		t, err1 := strconv.ParseFloat(record[0], 64)
		e, err2 := strconv.ParseFloat(record[1], 64)
		n, err3 := strconv.ParseFloat(record[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		series.Times = append(series.Times, t)
		series.Energy = append(series.Energy, e)
		series.Shapes = append(series.Shapes, n)
	}
	if len(series.Times) > 1 {
		series.Period = series.Times[1] - series.Times[0]
	}
	return series, nil
}
