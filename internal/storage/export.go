package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run     RunMetadata          `json:"run"`
	Times   []float64            `json:"times"`
	Metrics map[string][]float64 `json:"metrics"`
	Frames  []ExportFrame        `json:"frames"`
}

type ExportFrame struct {
	Frame     int          `json:"frame"`
	Positions [][2]float64 `json:"positions"`
}

// ExportJSON writes a stored run, including its metric series and recorded
// frames, as a single indented JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, times, err := s.LoadMetrics(runID)
	if err != nil {
		return err
	}
	frames, order, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Times:   times,
		Metrics: series,
		Frames:  make([]ExportFrame, 0, len(order)),
	}
	for _, n := range order {
		ef := ExportFrame{Frame: n, Positions: make([][2]float64, len(frames[n]))}
		for i, p := range frames[n] {
			ef.Positions[i] = [2]float64{p.X, p.Y}
		}
		data.Frames = append(data.Frames, ef)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
