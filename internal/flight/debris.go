package flight

import (
	"math"

	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/vessel"
)

// Jettisoned stages get a nominal mass instead of their real one; debris
// only needs to fall believably.
const debrisNominalMass = 500.0

// Debris is a detached subtree coasting on its own. It flies a single
// Euler step per tick with gravity and drag but no thrust, control or
// contact handling, and disappears once it drops below a surface.
type Debris struct {
	Name  string
	Parts []*vessel.Part

	Pos    astro.Vec2
	Vel    astro.Vec2
	Rot    float64
	AngVel float64

	area float64
}

func newDebris(name string, parts []*vessel.Part, pos, vel astro.Vec2, rot, angVel float64) *Debris {
	d := &Debris{
		Name:   name,
		Parts:  parts,
		Pos:    pos,
		Vel:    vel,
		Rot:    rot,
		AngVel: angVel,
	}
	for _, p := range parts {
		d.area += p.DragArea(1)
	}
	return d
}

// update advances the debris one tick and reports whether it survives.
func (d *Debris) update(env *astro.Environment, t, dt float64) bool {
	acc := env.Gravity(d.Pos, t)
	acc = acc.Add(env.Drag(d.Pos, d.Vel, d.area).Scale(1 / debrisNominalMass))
	d.Vel = d.Vel.Add(acc.Scale(dt))
	d.Pos = d.Pos.Add(d.Vel.Scale(dt))
	d.Rot += d.AngVel * dt

	if math.IsNaN(d.Pos.X) || math.IsNaN(d.Pos.Y) {
		return false
	}
	return env.Altitude(d.Pos, t+dt) >= 0
}
