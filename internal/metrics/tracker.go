package metrics

import "github.com/san-kum/particles/internal/particle"

// Tracker observes a set of metrics once per frame and keeps a bounded
// history of each. It satisfies frame.Observer.
type Tracker struct {
	metrics  []Metric
	history  map[string][]float64
	capacity int
}

// NewTracker keeps at most capacity samples per metric; capacity <= 0 keeps
// everything.
func NewTracker(capacity int, ms ...Metric) *Tracker {
	return &Tracker{
		metrics:  ms,
		history:  make(map[string][]float64, len(ms)),
		capacity: capacity,
	}
}

func (t *Tracker) OnFrame(st *particle.Store, _ int, _ float64) {
	for _, m := range t.metrics {
		m.Observe(st)
		h := append(t.history[m.Name()], m.Value())
		if t.capacity > 0 && len(h) > t.capacity {
			h = h[len(h)-t.capacity:]
		}
		t.history[m.Name()] = h
	}
}

func (t *Tracker) Metrics() []Metric { return t.metrics }

func (t *Tracker) Names() []string {
	names := make([]string, len(t.metrics))
	for i, m := range t.metrics {
		names[i] = m.Name()
	}
	return names
}

func (t *Tracker) History(name string) []float64 { return t.history[name] }

// Values returns the latest value of every metric.
func (t *Tracker) Values() map[string]float64 {
	out := make(map[string]float64, len(t.metrics))
	for _, m := range t.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (t *Tracker) Reset() {
	for _, m := range t.metrics {
		m.Reset()
	}
	t.history = make(map[string][]float64, len(t.metrics))
}
