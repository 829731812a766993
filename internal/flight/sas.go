package flight

import (
	"math"

	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/config"
)

// Autopilot turns a hold mode into commanded torque. Gains scale with
// the craft's moment of inertia so the same settings fly a bare pod and
// a full stack.
type Autopilot struct {
	Kp         float64
	Kd         float64
	Damping    float64
	MinSpeed   float64
	TurnTorque float64
}

func NewAutopilot(f config.Flight) *Autopilot {
	return &Autopilot{
		Kp:         f.SASKp,
		Kd:         f.SASKd,
		Damping:    f.SASDamping,
		MinSpeed:   f.MinProgradeSpeed,
		TurnTorque: f.TurnTorque,
	}
}

// torque builds the per-stage torque function for one tick. Manual turn
// input adds on top of whatever the hold mode commands.
func (a *Autopilot) torque(mode Mode, turn, inertia float64) func(rot, angVel float64, vel astro.Vec2) float64 {
	return func(rot, angVel float64, vel astro.Vec2) float64 {
		tau := turn * a.TurnTorque
		switch mode {
		case ModeStability:
			tau -= a.Damping * inertia * angVel
		case ModePrograde:
			tau += a.hold(rot, angVel, vel, 0, inertia)
		case ModeRetrograde:
			tau += a.hold(rot, angVel, vel, math.Pi, inertia)
		}
		return tau
	}
}

// hold steers toward the velocity direction plus a fixed offset. Below
// MinSpeed the velocity direction carries no information, so hold falls
// back to plain rate damping.
func (a *Autopilot) hold(rot, angVel float64, vel astro.Vec2, offset, inertia float64) float64 {
	if vel.Length() < a.MinSpeed {
		return -a.Damping * inertia * angVel
	}
	target := math.Atan2(vel.X, vel.Y) + offset
	err := wrapAngle(target - rot)
	return inertia * (a.Kp*err - a.Kd*angVel)
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
