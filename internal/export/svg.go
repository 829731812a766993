// Package export renders recorded flights as standalone SVG files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/apogee/internal/storage"
)

// TrajectorySVG draws a flight path over the planet disc. Both axes use
// one scale so orbits stay round.
func TrajectorySVG(samples []storage.Sample, planetRadius float64, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	minX, maxX := samples[0].X, samples[0].X
	minY, maxY := samples[0].Y, samples[0].Y
	for _, p := range samples {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	rangeX *= 1.2
	rangeY *= 1.2

	scale := math.Min(float64(width)/rangeX, float64(height)/rangeY)
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	project := func(x, y float64) (float64, float64) {
		return float64(width)/2 + (x-cx)*scale, float64(height)/2 - (y-cy)*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	px, py := project(0, 0)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#16324a" stroke="#2e5a7a" stroke-width="1"/>
`, px, py, planetRadius*scale))

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i, p := range samples {
		x, y := project(p.X, p.Y)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
