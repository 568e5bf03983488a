package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

func newStore(count int, seed uint64) *particle.Store {
	return particle.New(count, r2.Vec{X: 400, Y: 300}, particle.SpeedRange{Min: 25, Max: 50}, seed)
}

func TestSpread(t *testing.T) {
	st := newStore(100, 1)
	m := NewSpread()

	m.Observe(st)
	if m.Value() != 0 {
		t.Errorf("expected zero spread at spawn, got %f", m.Value())
	}

	st.Advance(2.0)
	m.Observe(st)
	if m.Value() < 50-1e-9 || m.Value() > 100+1e-9 {
		t.Errorf("spread %f outside [50, 100] after 2s", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear spread")
	}
}

func TestSpread_FixedSpeedIsExact(t *testing.T) {
	st := particle.New(40, r2.Vec{}, particle.SpeedRange{Min: 10, Max: 10}, 4)
	st.Advance(3)

	m := NewSpread()
	m.Observe(st)
	if math.Abs(m.Value()-30) > 1e-9 {
		t.Errorf("expected spread 30, got %f", m.Value())
	}
}

func TestMeanSpeed(t *testing.T) {
	st := particle.New(40, r2.Vec{}, particle.SpeedRange{Min: 12, Max: 12}, 4)
	m := NewMeanSpeed()
	m.Observe(st)
	if math.Abs(m.Value()-12) > 1e-9 {
		t.Errorf("expected mean speed 12, got %f", m.Value())
	}

	m.Observe(particle.New(0, r2.Vec{}, particle.SpeedRange{}, 1))
	if m.Value() != 0 {
		t.Errorf("expected 0 for empty store, got %f", m.Value())
	}
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name    string
		advance float64
		want    float64
	}{
		{"at spawn", 0, 100},
		{"still inside", 5, 100},
		{"all gone", 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(100, 9)
			st.Advance(tt.advance)
			m := NewVisible(800, 600)
			m.Observe(st)
			if m.Value() != tt.want {
				t.Errorf("expected %v visible, got %v", tt.want, m.Value())
			}
		})
	}
}

func TestTracker(t *testing.T) {
	st := newStore(10, 2)
	tr := NewTracker(3, Defaults(800, 600)...)

	for frame := 1; frame <= 5; frame++ {
		st.Advance(1)
		tr.OnFrame(st, frame, float64(frame))
	}

	names := tr.Names()
	if len(names) != 3 || names[0] != "spread" || names[1] != "visible" || names[2] != "mean_speed" {
		t.Fatalf("unexpected names %v", names)
	}

	spread := tr.History("spread")
	if len(spread) != 3 {
		t.Fatalf("expected history capped at 3, got %d", len(spread))
	}
	for i := 1; i < len(spread); i++ {
		if spread[i] <= spread[i-1] {
			t.Errorf("spread should grow every frame: %v", spread)
		}
	}

	vals := tr.Values()
	if vals["spread"] != spread[len(spread)-1] {
		t.Errorf("latest value %f does not match history tail %f", vals["spread"], spread[len(spread)-1])
	}

	tr.Reset()
	if len(tr.History("spread")) != 0 {
		t.Error("reset did not clear history")
	}
}

func TestTracker_Unbounded(t *testing.T) {
	st := newStore(5, 3)
	tr := NewTracker(0, NewSpread())
	for frame := 1; frame <= 50; frame++ {
		tr.OnFrame(st, frame, 0)
	}
	if got := len(tr.History("spread")); got != 50 {
		t.Errorf("expected 50 samples, got %d", got)
	}
}
