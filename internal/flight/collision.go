package flight

import "github.com/san-kum/apogee/internal/astro"

// resolveContact handles surface interaction for one substep. Contact
// speeds are taken relative to the body so a moving moon does not smash
// everything that touches it. A hard radial hit is a crash; a slow
// touch either lands the craft or, if it never really flew, keeps it
// resting on the pad. Anything in between slides: the inward radial
// component is removed and tangential motion survives.
func (s *Sim) resolveContact(x kinState, t float64) kinState {
	pos := astro.Vec2{X: x[0], Y: x[1]}
	vel := astro.Vec2{X: x[2], Y: x[3]}
	fl := s.cfg.Flight

	type contact struct {
		body    astro.Body
		center  astro.Vec2
		bodyVel astro.Vec2
	}
	checks := [2]contact{
		{s.env.Planet, astro.Vec2{}, astro.Vec2{}},
		{s.env.Moon, s.env.MoonPos(t), s.env.MoonVel(t)},
	}

	for _, c := range checks {
		d := pos.Distance(c.center)
		if d >= c.body.Radius || d == 0 {
			continue
		}
		rhat := pos.Sub(c.center).Scale(1 / d)
		rel := vel.Sub(c.bodyVel)
		radial := rel.Dot(rhat)
		surface := c.center.Add(rhat.Scale(c.body.Radius))

		switch {
		case radial < -fl.CrashSpeed:
			s.state.Status = StatusCrashed
			s.logf("crashed into %s at %.0f m/s", c.body.Name, -radial)
			pos = surface
			vel = c.bodyVel

		case rel.Length() < fl.RestSpeed:
			pos = surface
			vel = c.bodyVel
			if s.state.MaxAltitude > fl.MinFlightAltitude {
				s.state.Status = StatusLanded
				s.logf("touchdown on %s", c.body.Name)
			}

		default:
			pos = surface
			if radial < 0 {
				rel = rel.Sub(rhat.Scale(radial))
			}
			vel = c.bodyVel.Add(rel)
		}
		if s.state.Status != StatusFlying {
			break
		}
	}
	return kinState{pos.X, pos.Y, vel.X, vel.Y, x[4], x[5]}
}
