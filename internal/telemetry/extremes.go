// Package telemetry provides flight metrics that accumulate over a run.
// Every metric implements flight.Metric and can be registered on a
// simulation before takeoff.
package telemetry

import (
	"math"

	"github.com/san-kum/apogee/internal/flight"
)

type MaxAltitude struct {
	name string
	max  float64
}

func NewMaxAltitude() *MaxAltitude {
	return &MaxAltitude{name: "max_altitude"}
}

func (m *MaxAltitude) Name() string { return m.name }

func (m *MaxAltitude) Observe(s *flight.State) {
	m.max = math.Max(m.max, s.Altitude)
}

func (m *MaxAltitude) Value() float64 {
	return m.max
}

func (m *MaxAltitude) Reset() {
	m.max = 0
}

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s *flight.State) {
	m.max = math.Max(m.max, s.Speed)
}

func (m *MaxSpeed) Value() float64 {
	return m.max
}

func (m *MaxSpeed) Reset() {
	m.max = 0
}
