package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/synclattice/internal/lattice"
	"github.com/san-kum/synclattice/internal/viz"
)

// GridToSVG draws one square per node colored by phase. Titans get a white
// outline and anchors a gold ring at their center.
func GridToSVG(g *lattice.Grid, scale float64, anchors []lattice.Anchor) string {
	if g == nil || g.Size == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 8
	}

	side := float64(g.Size) * scale
	th := viz.ThemeSpectrum

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="none">
`, side, side, side, side))

	for i, n := range g.Nodes {
		x, y := g.Coords(i)
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(x)*scale, float64(y)*scale, scale, scale, viz.PhaseColor(n.Theta, n.R, th)))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g fill="none" stroke="#ffffff" stroke-width="1">` + "\n")
	for i, n := range g.Nodes {
		if !n.Titan {
			continue
		}
		x, y := g.Coords(i)
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(x)*scale+0.5, float64(y)*scale+0.5, scale-1, scale-1))
	}
	sb.WriteString("</g>\n")

	if len(anchors) > 0 {
		sb.WriteString(`<g fill="none" stroke="#ffd700" stroke-width="1.5">` + "\n")
		for _, a := range anchors {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"><title>%s</title></circle>
`, (float64(a.X)+0.5)*scale, (float64(a.Y)+0.5)*scale, scale*0.35, a.Identity))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values against their index as a single polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	points := make([]struct{ X, Y float64 }, len(values))
	for i, v := range values {
		points[i] = struct{ X, Y float64 }{X: float64(i), Y: v}
	}
	return TrajectoryToSVG(points, width, height, strokeColor)
}

// TrajectoryToSVG creates an SVG path through points, padded by 10% of
// their range on each side.
func TrajectoryToSVG(points []struct{ X, Y float64 }, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
