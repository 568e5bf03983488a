package metrics

import "github.com/san-kum/particles/internal/particle"

type Metric interface {
	Name() string
	Observe(st *particle.Store)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every run.
func Defaults(width, height float64) []Metric {
	return []Metric{
		NewSpread(),
		NewVisible(width, height),
		NewMeanSpeed(),
	}
}
