package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.RGBA) float64 {
	return float64(c.A) / 255
}

func header(sb *strings.Builder, width, height int, bg color.RGBA) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, hexColor(bg)))
}

// FrameToSVG draws one frame in window coordinates. Particles outside the
// viewBox are still written; the viewer clips them.
func FrameToSVG(positions []r2.Vec, shape particle.Shape, width, height int, bg color.RGBA) string {
	var sb strings.Builder
	header(&sb, width, height, bg)

	sb.WriteString(fmt.Sprintf(`<g fill="%s" fill-opacity="%.3f">
`, hexColor(shape.Color), opacity(shape.Color)))
	for _, p := range positions {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"/>
`, p.X, p.Y, shape.Radius))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrailsToSVG joins each particle's positions across frames into a polyline.
// frames[k][i] is particle i in the k-th recorded frame.
func TrailsToSVG(frames [][]r2.Vec, stroke color.RGBA, width, height int, bg color.RGBA) string {
	var sb strings.Builder
	header(&sb, width, height, bg)

	sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="1">
`, hexColor(stroke), opacity(stroke)))

	if len(frames) >= 2 {
		n := len(frames[0])
		for _, f := range frames {
			if len(f) < n {
				n = len(f)
			}
		}
		for i := 0; i < n; i++ {
			sb.WriteString(`<polyline points="`)
			for k, f := range frames {
				if k > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", f[i].X, f[i].Y))
			}
			sb.WriteString("\"/>\n")
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
