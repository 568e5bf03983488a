package frame

import (
	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Window is the windowing/rendering collaborator. PollClose drains pending
// events without blocking and reports whether any of them asked to close.
type Window interface {
	PollClose() bool
	Clear()
	Draw(shape particle.Shape, at r2.Vec)
	Present()
}

// Observer sees the store after it has been advanced and before it is drawn.
type Observer interface {
	OnFrame(st *particle.Store, frame int, t float64)
}

type Driver struct {
	store     *particle.Store
	shape     particle.Shape
	window    Window
	clock     Clock
	observers []Observer

	state   State
	frames  int
	elapsed float64
}

func NewDriver(store *particle.Store, shape particle.Shape, window Window, clock Clock) *Driver {
	return &Driver{
		store:     store,
		shape:     shape,
		window:    window,
		clock:     clock,
		observers: make([]Observer, 0),
		state:     Running,
	}
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Step runs one poll, advance, render iteration. A close request stops the
// driver before anything is advanced or drawn; once stopped, Step does nothing.
func (d *Driver) Step() State {
	if d.state == Stopped {
		return d.state
	}

	if d.window.PollClose() {
		d.state = Stopped
		return d.state
	}

	dt := d.clock.Restart()
	d.store.Advance(dt)
	d.elapsed += dt
	d.frames++

	for _, obs := range d.observers {
		obs.OnFrame(d.store, d.frames, d.elapsed)
	}

	d.window.Clear()
	d.store.ForEach(func(p particle.Particle) {
		d.window.Draw(d.shape, p.Position)
	})
	d.window.Present()

	return d.state
}

// Run steps until the window asks to close and returns the number of frames
// rendered.
func (d *Driver) Run() int {
	for d.Step() == Running {
	}
	return d.frames
}

func (d *Driver) State() State           { return d.state }
func (d *Driver) Frames() int            { return d.frames }
func (d *Driver) Elapsed() float64       { return d.elapsed }
func (d *Driver) Store() *particle.Store { return d.store }
func (d *Driver) Shape() particle.Shape  { return d.shape }
