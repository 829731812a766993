package telemetry

import (
	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/flight"
)

// MaxQ tracks the peak dynamic pressure seen during ascent, the load
// that usually sizes a rocket's structure.
type MaxQ struct {
	name string
	env  *astro.Environment
	max  float64
}

func NewMaxQ(env *astro.Environment) *MaxQ {
	return &MaxQ{name: "max_q", env: env}
}

func (m *MaxQ) Name() string { return m.name }

func (m *MaxQ) Observe(s *flight.State) {
	q := 0.5 * m.env.Density(s.Pos) * s.Speed * s.Speed
	if q > m.max {
		m.max = q
	}
}

func (m *MaxQ) Value() float64 {
	return m.max
}

func (m *MaxQ) Reset() {
	m.max = 0
}
