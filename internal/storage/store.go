package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/record"
	"gonum.org/v1/gonum/spatial/r2"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	metricsFile  = "metrics.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       uint64             `json:"seed"`
	Count      int                `json:"count"`
	OriginX    float64            `json:"origin_x"`
	OriginY    float64            `json:"origin_y"`
	SpeedMin   float64            `json:"speed_min"`
	SpeedMax   float64            `json:"speed_max"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Radius     float64            `json:"radius"`
	Color      string             `json:"color"`
	Background string             `json:"background"`
	Dt         float64            `json:"dt"`
	Frames     int                `json:"frames"`
	Elapsed    float64            `json:"elapsed"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewRunMetadata describes a recording of cfg under seed. Save fills in
// the id, timestamp and results.
func NewRunMetadata(cfg *config.Config, seed uint64) RunMetadata {
	return RunMetadata{
		Preset:     cfg.Preset,
		Seed:       seed,
		Count:      cfg.Particles.Count,
		OriginX:    cfg.Particles.OriginX,
		OriginY:    cfg.Particles.OriginY,
		SpeedMin:   cfg.Particles.SpeedMin,
		SpeedMax:   cfg.Particles.SpeedMax,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Radius:     cfg.Shape.Radius,
		Color:      cfg.Shape.Color,
		Background: cfg.Window.Background,
		Dt:         cfg.Record.Dt,
	}
}

// Config rebuilds the scene a run was recorded with. Fields missing from
// older metadata keep the preset's or the default values.
func (m *RunMetadata) Config() *config.Config {
	cfg := config.DefaultConfig()
	if p := config.GetPreset(m.Preset); p != nil {
		cfg = p
	}
	if m.Width > 0 && m.Height > 0 {
		cfg.Window.Width, cfg.Window.Height = m.Width, m.Height
	}
	if m.Count > 0 {
		cfg.Particles.Count = m.Count
	}
	if m.OriginX != 0 || m.OriginY != 0 {
		cfg.Particles.OriginX, cfg.Particles.OriginY = m.OriginX, m.OriginY
	}
	if m.SpeedMax > 0 {
		cfg.Particles.SpeedMin, cfg.Particles.SpeedMax = m.SpeedMin, m.SpeedMax
	}
	if m.Radius > 0 {
		cfg.Shape.Radius = m.Radius
	}
	if m.Color != "" {
		cfg.Shape.Color = m.Color
	}
	if m.Background != "" {
		cfg.Window.Background = m.Background
	}
	if m.Dt > 0 {
		cfg.Record.Dt = m.Dt
	}
	cfg.Particles.Seed = m.Seed
	return cfg
}

// Save writes meta and the recorded frames under a new run directory and
// returns the run id. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, res *record.Result) (string, error) {
	ts := s.now()
	runID, runDir, err := s.newRunDir(fmt.Sprintf("run_%d_%d", ts.Unix(), meta.Seed%100000))
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = ts
	meta.Frames = res.Frames
	meta.Elapsed = res.Elapsed
	meta.Metrics = res.Final

	// metadata.json is written last: List and Load take it as a complete run.
	if err := s.writeRun(runDir, meta, res); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func (s *Store) writeRun(runDir string, meta RunMetadata, res *record.Result) error {
	if err := writeFrames(filepath.Join(runDir, framesFile), res.Samples); err != nil {
		return err
	}
	if err := writeMetrics(filepath.Join(runDir, metricsFile), res.Names, res.Metrics); err != nil {
		return err
	}
	return writeJSON(filepath.Join(runDir, metadataFile), meta)
}

// newRunDir creates a fresh directory for base, adding a numeric suffix when
// a run with the same id already exists.
func (s *Store) newRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for n := 1; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
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

// writeFrames is a variable so tests can make it fail.
var writeFrames = writeFramesCSV

func writeFramesCSV(path string, samples []record.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "time", "index", "x", "y"}); err != nil {
		return err
	}
	for _, s := range samples {
		frame := strconv.Itoa(s.Frame)
		t := strconv.FormatFloat(s.Time, 'f', 6, 64)
		for i, p := range s.Positions {
			row := []string{
				frame,
				t,
				strconv.Itoa(i),
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func writeMetrics(path string, names []string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"frame", "time"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := make([]string, len(r))
		for i, v := range r {
			if i == 0 {
				row[i] = strconv.Itoa(int(v))
				continue
			}
			row[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every run under the base directory, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadMetrics returns the per-frame metric series keyed by metric name, plus
// the frame times.
func (s *Store) LoadMetrics(runID string) (map[string][]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, metricsFile), runID)
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return map[string][]float64{}, []float64{}, nil
	}

	header := records[0]
	series := make(map[string][]float64, len(header))
	times := make([]float64, 0, len(records)-1)

	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		for j := 2; j < len(rec); j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				v = 0
			}
			series[header[j]] = append(series[header[j]], v)
		}
	}
	return series, times, nil
}

// LoadFrames returns the recorded positions keyed by frame number.
func (s *Store) LoadFrames(runID string) (map[int][]r2.Vec, []int, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile), runID)
	if err != nil {
		return nil, nil, err
	}

	frames := make(map[int][]r2.Vec)
	order := make([]int, 0)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 5 {
			continue
		}
		n, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		x, errX := strconv.ParseFloat(rec[3], 64)
		y, errY := strconv.ParseFloat(rec[4], 64)
		if errX != nil || errY != nil {
			continue
		}
		if _, seen := frames[n]; !seen {
			order = append(order, n)
		}
		frames[n] = append(frames[n], r2.Vec{X: x, Y: y})
	}
	return frames, order, nil
}

func readCSV(path, runID string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
