package telemetry

import (
	"math"

	"github.com/san-kum/apogee/internal/flight"
)

// Downrange measures ground-track distance from the launch site along
// the planet surface. It wraps at half the circumference, so it reads
// the short way around.
type Downrange struct {
	name     string
	radius   float64
	start    float64
	observed bool
	dist     float64
}

func NewDownrange(planetRadius float64) *Downrange {
	return &Downrange{name: "downrange", radius: planetRadius}
}

func (d *Downrange) Name() string { return d.name }

func (d *Downrange) Observe(s *flight.State) {
	angle := math.Atan2(s.Pos.Y, s.Pos.X)
	if !d.observed {
		d.start = angle
		d.observed = true
		return
	}
	diff := angle - d.start
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	d.dist = math.Abs(diff) * d.radius
}

func (d *Downrange) Value() float64 {
	return d.dist
}

func (d *Downrange) Reset() {
	d.start = 0
	d.observed = false
	d.dist = 0
}
