package flight

import "github.com/san-kum/apogee/internal/astro"

// tickForces holds everything about the craft that stays constant across
// one tick's substeps: mass, inertia, drag area and engine thrust are
// resolved once per tick, while gravity, drag direction and attitude
// torque are evaluated fresh at every integrator stage.
type tickForces struct {
	env     *astro.Environment
	mass    float64
	inertia float64
	thrust  float64
	area    float64
	torque  func(rot, angVel float64, vel astro.Vec2) float64
}

func (f *tickForces) derive(x kinState, t float64) kinState {
	pos := astro.Vec2{X: x[0], Y: x[1]}
	vel := astro.Vec2{X: x[2], Y: x[3]}

	acc := f.env.Gravity(pos, t)
	force := f.env.Drag(pos, vel, f.area)
	force = force.Add(astro.Heading(x[4]).Scale(f.thrust))
	acc = acc.Add(force.Scale(1 / f.mass))

	alpha := f.torque(x[4], x[5], vel) / f.inertia

	return kinState{x[2], x[3], acc.X, acc.Y, x[5], alpha}
}
