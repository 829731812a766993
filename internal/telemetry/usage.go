package telemetry

import "github.com/san-kum/apogee/internal/flight"

// FuelBurned reports total propellant burned by the engines. Fuel lost
// with a jettisoned stage does not count.
type FuelBurned struct {
	name string
	last float64
}

func NewFuelBurned() *FuelBurned {
	return &FuelBurned{name: "fuel_burned"}
}

func (f *FuelBurned) Name() string { return f.name }

func (f *FuelBurned) Observe(s *flight.State) {
	f.last = s.Burned
}

func (f *FuelBurned) Value() float64 {
	return f.last
}

func (f *FuelBurned) Reset() {
	f.last = 0
}

// BurnTime accumulates the seconds the engines spent producing thrust.
type BurnTime struct {
	name     string
	total    float64
	prev     float64
	observed bool
}

func NewBurnTime() *BurnTime {
	return &BurnTime{name: "burn_time"}
}

func (b *BurnTime) Name() string { return b.name }

func (b *BurnTime) Observe(s *flight.State) {
	if b.observed && s.Thrust > 0 {
		b.total += s.Time - b.prev
	}
	b.prev = s.Time
	b.observed = true
}

func (b *BurnTime) Value() float64 {
	return b.total
}

func (b *BurnTime) Reset() {
	b.total = 0
	b.prev = 0
	b.observed = false
}
