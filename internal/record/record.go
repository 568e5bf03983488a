package record

import (
	"fmt"
	"time"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/frame"
	"github.com/san-kum/particles/internal/metrics"
	"github.com/san-kum/particles/internal/particle"
)

type Result struct {
	Seed    uint64
	Frames  int
	Elapsed float64
	Samples []Sample
	// Each Metrics row is frame, time, then one value per entry in Names.
	Names   []string
	Metrics [][]float64
	Final   map[string]float64
	Wall    time.Duration
}

// metricRows appends the latest metric values after every frame.
type metricRows struct {
	tracker *metrics.Tracker
	rows    [][]float64
}

func (r *metricRows) OnFrame(st *particle.Store, n int, t float64) {
	r.tracker.OnFrame(st, n, t)
	row := make([]float64, 0, len(r.tracker.Metrics())+2)
	row = append(row, float64(n), t)
	for _, m := range r.tracker.Metrics() {
		row = append(row, m.Value())
	}
	r.rows = append(r.rows, row)
}

// Run simulates cfg headlessly at a fixed dt. The run is fully determined by
// cfg and seed.
func Run(cfg *config.Config, seed uint64) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	store := cfg.NewStore(seed)
	tape := NewTape(cfg.Record.Frames, cfg.Record.Stride, cfg.Record.Dt)
	tracker := metrics.NewTracker(1, metrics.Defaults(float64(cfg.Window.Width), float64(cfg.Window.Height))...)
	rows := &metricRows{tracker: tracker, rows: make([][]float64, 0, cfg.Record.Frames)}

	driver := frame.NewDriver(store, cfg.ParticleShape(), tape, frame.FixedClock{Dt: cfg.Record.Dt})
	driver.AddObserver(rows)

	start := time.Now()
	n := driver.Run()

	return &Result{
		Seed:    seed,
		Frames:  n,
		Elapsed: driver.Elapsed(),
		Samples: tape.Samples(),
		Names:   tracker.Names(),
		Metrics: rows.rows,
		Final:   tracker.Values(),
		Wall:    time.Since(start),
	}, nil
}
