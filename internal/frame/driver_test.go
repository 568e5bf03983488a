package frame

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

// scriptedWindow closes after openFrames presents and logs every call.
type scriptedWindow struct {
	openFrames int
	presented  int
	calls      []string
	drawn      []r2.Vec
	shapes     []particle.Shape
}

func (w *scriptedWindow) PollClose() bool {
	w.calls = append(w.calls, "poll")
	return w.presented >= w.openFrames
}

func (w *scriptedWindow) Clear() { w.calls = append(w.calls, "clear") }

func (w *scriptedWindow) Draw(shape particle.Shape, at r2.Vec) {
	w.calls = append(w.calls, "draw")
	w.drawn = append(w.drawn, at)
	w.shapes = append(w.shapes, shape)
}

func (w *scriptedWindow) Present() {
	w.calls = append(w.calls, "present")
	w.presented++
}

type sequenceClock struct {
	dts []float64
	n   int
}

func (c *sequenceClock) Restart() float64 {
	dt := c.dts[c.n%len(c.dts)]
	c.n++
	return dt
}

type frameLog struct {
	frames []int
	times  []float64
	firstX []float64
}

func (l *frameLog) OnFrame(st *particle.Store, frame int, t float64) {
	l.frames = append(l.frames, frame)
	l.times = append(l.times, t)
	l.firstX = append(l.firstX, st.At(0).Position.X)
}

var _ = Describe("Driver", func() {
	var (
		store  *particle.Store
		shape  particle.Shape
		window *scriptedWindow
		origin r2.Vec
	)

	BeforeEach(func() {
		origin = r2.Vec{X: 400, Y: 300}
		store = particle.New(3, origin, particle.SpeedRange{Min: 25, Max: 50}, 7)
		shape = particle.DefaultShape()
		window = &scriptedWindow{openFrames: 2}
	})

	It("starts in the running state", func() {
		d := NewDriver(store, shape, window, FixedClock{Dt: 0.5})
		Expect(d.State()).To(Equal(Running))
		Expect(d.Frames()).To(BeZero())
	})

	It("polls, then clears, draws every particle and presents", func() {
		d := NewDriver(store, shape, window, FixedClock{Dt: 0.5})

		Expect(d.Step()).To(Equal(Running))
		Expect(window.calls).To(Equal([]string{"poll", "clear", "draw", "draw", "draw", "present"}))
	})

	It("advances before drawing", func() {
		initial := store.Snapshot()
		d := NewDriver(store, shape, window, FixedClock{Dt: 0.5})

		d.Step()

		Expect(window.drawn).To(HaveLen(3))
		for i, p := range initial {
			Expect(window.drawn[i].X).To(BeNumerically("~", p.Position.X+p.Velocity.X*0.5, 1e-9))
			Expect(window.drawn[i].Y).To(BeNumerically("~", p.Position.Y+p.Velocity.Y*0.5, 1e-9))
		}
	})

	It("draws the same shape for every particle", func() {
		d := NewDriver(store, shape, window, FixedClock{Dt: 0.1})
		d.Step()

		for _, s := range window.shapes {
			Expect(s).To(Equal(shape))
		}
	})

	It("stops on a close request without advancing or drawing", func() {
		window.openFrames = 0
		d := NewDriver(store, shape, window, FixedClock{Dt: 1})

		Expect(d.Step()).To(Equal(Stopped))
		Expect(window.calls).To(Equal([]string{"poll"}))
		store.ForEach(func(p particle.Particle) {
			Expect(p.Position).To(Equal(origin))
		})
	})

	It("treats Stopped as terminal", func() {
		window.openFrames = 0
		d := NewDriver(store, shape, window, FixedClock{Dt: 1})
		d.Step()
		window.openFrames = 100

		Expect(d.Step()).To(Equal(Stopped))
		Expect(window.calls).To(Equal([]string{"poll"}))
	})

	It("runs until closed and counts frames", func() {
		window.openFrames = 5
		d := NewDriver(store, shape, window, FixedClock{Dt: 0.25})

		Expect(d.Run()).To(Equal(5))
		Expect(d.State()).To(Equal(Stopped))
		Expect(d.Elapsed()).To(BeNumerically("~", 1.25, 1e-12))
		Expect(window.presented).To(Equal(5))
	})

	It("uses whatever dt the clock reports each frame", func() {
		window.openFrames = 3
		clock := &sequenceClock{dts: []float64{0, 0.1, 2.0}}
		initial := store.At(0)
		d := NewDriver(store, shape, window, clock)

		d.Run()

		Expect(store.At(0).Position.X).To(BeNumerically("~", initial.Position.X+initial.Velocity.X*2.1, 1e-9))
	})

	It("notifies observers after advance with frame index and time", func() {
		window.openFrames = 3
		log := &frameLog{}
		initialX := store.At(0).Position.X
		vx := store.At(0).Velocity.X
		d := NewDriver(store, shape, window, FixedClock{Dt: 0.5})
		d.AddObserver(log)

		d.Run()

		Expect(log.frames).To(Equal([]int{1, 2, 3}))
		Expect(log.times).To(Equal([]float64{0.5, 1.0, 1.5}))
		Expect(log.firstX[0]).To(BeNumerically("~", initialX+vx*0.5, 1e-9))
	})

	It("handles an empty store", func() {
		empty := particle.New(0, origin, particle.SpeedRange{Min: 1, Max: 2}, 1)
		window.openFrames = 1
		d := NewDriver(empty, shape, window, FixedClock{Dt: 0.1})

		Expect(d.Run()).To(Equal(1))
		Expect(window.calls).To(Equal([]string{"poll", "clear", "present", "poll"}))
	})
})

var _ = Describe("State", func() {
	DescribeTable("String",
		func(s State, want string) {
			Expect(s.String()).To(Equal(want))
			Expect(fmt.Sprint(s)).To(Equal(want))
		},
		Entry("running", Running, "running"),
		Entry("stopped", Stopped, "stopped"),
		Entry("unknown", State(9), "unknown"),
	)
})

var _ = Describe("WallClock", func() {
	It("reports seconds since the previous restart", func() {
		base := time.Unix(1000, 0)
		ticks := []time.Time{
			base,
			base.Add(16 * time.Millisecond),
			base.Add(50 * time.Millisecond),
			base.Add(50 * time.Millisecond),
		}
		i := 0
		c := newWallClock(func() time.Time {
			t := ticks[i]
			i++
			return t
		})

		Expect(c.Restart()).To(BeNumerically("~", 0.016, 1e-12))
		Expect(c.Restart()).To(BeNumerically("~", 0.034, 1e-12))
		Expect(c.Restart()).To(BeZero())
	})

	It("starts near zero on a fresh clock", func() {
		c := NewWallClock()
		dt := c.Restart()
		Expect(dt).To(BeNumerically(">=", 0))
		Expect(dt).To(BeNumerically("<", 1))
	})
})

var _ = Describe("FixedClock", func() {
	It("always reports the configured dt", func() {
		c := FixedClock{Dt: 1.0 / 60}
		for i := 0; i < 3; i++ {
			Expect(c.Restart()).To(Equal(1.0 / 60))
		}
	})
})
