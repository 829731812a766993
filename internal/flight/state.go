package flight

import "github.com/san-kum/apogee/internal/astro"

// Status is the craft's lifecycle phase. The simulation freezes once the
// status leaves StatusFlying.
type Status int

const (
	StatusFlying Status = iota
	StatusLanded
	StatusCrashed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLanded:
		return "landed"
	case StatusCrashed:
		return "crashed"
	case StatusFailed:
		return "failed"
	default:
		return "flying"
	}
}

// State is the full readout of the craft after a tick. Everything a
// display or recorder needs is derived here once so consumers never
// touch the integrator state.
type State struct {
	Time float64

	Pos    astro.Vec2
	Vel    astro.Vec2
	Rot    float64
	AngVel float64

	Throttle float64
	Mode     Mode
	Warp     float64

	Mass    float64
	Fuel    float64
	FuelCap float64
	Burned  float64
	Thrust  float64

	Body            string
	Altitude        float64
	MaxAltitude     float64
	Speed           float64
	VerticalSpeed   float64
	HorizontalSpeed float64
	Elements        astro.Elements

	// Force breakdown at the end of the tick, in newtons.
	GravityF astro.Vec2
	DragF    astro.Vec2
	ThrustF  astro.Vec2

	Status Status
	Events []string
}
