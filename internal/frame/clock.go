package frame

import "time"

// Clock reports the seconds elapsed since its previous Restart (or since it
// was created) and starts counting again.
type Clock interface {
	Restart() float64
}

type WallClock struct {
	now  func() time.Time
	last time.Time
}

func NewWallClock() *WallClock {
	return newWallClock(time.Now)
}

func newWallClock(now func() time.Time) *WallClock {
	return &WallClock{now: now, last: now()}
}

func (c *WallClock) Restart() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return dt
}

// FixedClock always reports the same dt. Used for headless runs where the
// result must not depend on how fast the host is.
type FixedClock struct {
	Dt float64
}

func (c FixedClock) Restart() float64 { return c.Dt }
