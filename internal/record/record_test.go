package record

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestTape_ClosesAfterFrames(t *testing.T) {
	tape := NewTape(3, 1, 0.1)

	for i := 0; i < 3; i++ {
		if tape.PollClose() {
			t.Fatalf("closed early at frame %d", i)
		}
		tape.Clear()
		tape.Draw(particle.DefaultShape(), r2.Vec{X: float64(i)})
		tape.Present()
	}
	if !tape.PollClose() {
		t.Error("expected close request after 3 frames")
	}
	if tape.Presented() != 3 {
		t.Errorf("expected 3 presented, got %d", tape.Presented())
	}
}

func TestTape_Stride(t *testing.T) {
	tape := NewTape(10, 4, 0.5)
	for !tape.PollClose() {
		tape.Clear()
		tape.Draw(particle.DefaultShape(), r2.Vec{X: 1})
		tape.Present()
	}

	samples := tape.Samples()
	var frames []int
	for _, s := range samples {
		frames = append(frames, s.Frame)
	}
	want := []int{4, 8, 10}
	if len(frames) != len(want) {
		t.Fatalf("expected frames %v, got %v", want, frames)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("expected frames %v, got %v", want, frames)
		}
	}
	if samples[2].Time != 5.0 {
		t.Errorf("expected time 5.0, got %f", samples[2].Time)
	}
}

func TestTape_SamplesAreCopies(t *testing.T) {
	tape := NewTape(2, 1, 1)
	tape.Clear()
	tape.Draw(particle.DefaultShape(), r2.Vec{X: 1, Y: 1})
	tape.Present()
	tape.Clear()
	tape.Draw(particle.DefaultShape(), r2.Vec{X: 2, Y: 2})
	tape.Present()

	s := tape.Samples()
	if s[0].Positions[0] != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("first sample overwritten: %v", s[0].Positions[0])
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Particles.Count = 3
	cfg.Record.Frames = 120
	cfg.Record.Dt = 1.0 / 60
	cfg.Record.Stride = 60
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig()

	res, err := Run(cfg, 7)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Frames != 120 {
		t.Errorf("expected 120 frames, got %d", res.Frames)
	}
	if math.Abs(res.Elapsed-2.0) > 1e-9 {
		t.Errorf("expected 2s elapsed, got %f", res.Elapsed)
	}
	if len(res.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(res.Samples))
	}
	if len(res.Metrics) != 120 {
		t.Errorf("expected 120 metric rows, got %d", len(res.Metrics))
	}
	if len(res.Metrics[0]) != 2+len(res.Names) {
		t.Errorf("expected row width %d, got %d", 2+len(res.Names), len(res.Metrics[0]))
	}

	// Same seed through the store directly gives the final frame.
	st := cfg.NewStore(7)
	initial := st.Snapshot()
	last := res.Samples[len(res.Samples)-1]
	for i, p := range initial {
		wantX := p.Position.X + p.Velocity.X*2.0
		wantY := p.Position.Y + p.Velocity.Y*2.0
		got := last.Positions[i]
		if math.Abs(got.X-wantX) > 1e-9 || math.Abs(got.Y-wantY) > 1e-9 {
			t.Errorf("particle %d: got %v, want (%f, %f)", i, got, wantX, wantY)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	cfg := testConfig()
	a, err := Run(cfg, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(cfg, 42)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Samples {
		for j := range a.Samples[i].Positions {
			if a.Samples[i].Positions[j] != b.Samples[i].Positions[j] {
				t.Fatalf("sample %d particle %d differs", i, j)
			}
		}
	}
	if a.Final["spread"] != b.Final["spread"] {
		t.Errorf("final spread differs: %f vs %f", a.Final["spread"], b.Final["spread"])
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Record.Dt = 0

	_, err := Run(cfg, 1)
	if !errors.Is(err, config.ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}
