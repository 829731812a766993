// Package storage records flights to disk and reads them back. Each run
// gets its own directory with a metadata.json and a samples.csv.
package storage

import (
	"math"

	"github.com/san-kum/apogee/internal/flight"
)

// Sample is one flattened telemetry row.
type Sample struct {
	Time      float64 `json:"time"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	Rot       float64 `json:"rot"`
	Altitude  float64 `json:"altitude"`
	Speed     float64 `json:"speed"`
	Vertical  float64 `json:"vertical_speed"`
	Mass      float64 `json:"mass"`
	Fuel      float64 `json:"fuel"`
	Thrust    float64 `json:"thrust"`
	Apoapsis  float64 `json:"apoapsis"`
	Periapsis float64 `json:"periapsis"`
}

// sampleOf flattens a state. An unbound trajectory has no apoapsis; it
// records as -1 to keep the row JSON-safe.
func sampleOf(s *flight.State) Sample {
	ap := s.Elements.Apoapsis
	if math.IsInf(ap, 1) {
		ap = -1
	}
	return Sample{
		Time:      s.Time,
		X:         s.Pos.X,
		Y:         s.Pos.Y,
		VX:        s.Vel.X,
		VY:        s.Vel.Y,
		Rot:       s.Rot,
		Altitude:  s.Altitude,
		Speed:     s.Speed,
		Vertical:  s.VerticalSpeed,
		Mass:      s.Mass,
		Fuel:      s.Fuel,
		Thrust:    s.Thrust,
		Apoapsis:  ap,
		Periapsis: s.Elements.Periapsis,
	}
}

// Recorder collects samples as a flight observer. With stride n it keeps
// every nth tick.
type Recorder struct {
	stride  int
	count   int
	samples []Sample
}

func NewRecorder(stride int) *Recorder {
	if stride < 1 {
		stride = 1
	}
	return &Recorder{stride: stride}
}

func (r *Recorder) OnStep(s *flight.State) {
	if r.count%r.stride == 0 {
		r.samples = append(r.samples, sampleOf(s))
	}
	r.count++
}

func (r *Recorder) Samples() []Sample {
	return r.samples
}
