package flight

import (
	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/vessel"
)

// stage fires the lowest decoupler and spins the severed subtree off as
// debris. With no decouplers left a stage command deploys recovery gear
// instead, so the end of a staging sequence pops the chutes.
func (s *Sim) stage() {
	dec := s.craft.NextDecoupler()
	if dec == nil {
		s.deploy()
		return
	}

	sub := s.craft.Subtree(dec.ID)
	if len(sub) == s.craft.Count() {
		s.logf("staging refused: nothing would remain")
		return
	}

	ids := make(map[int]bool, len(sub))
	copies := make([]*vessel.Part, 0, len(sub))
	var heavy *vessel.Part
	for _, p := range sub {
		ids[p.ID] = true
		copies = append(copies, p.Clone())
		if heavy == nil || p.TotalMass() > heavy.TotalMass() {
			heavy = p
		}
	}
	name := heavy.Spec.Name

	// Push the stage away along the decoupler's craft-local direction.
	local := dec.Pos.Normalize()
	if local == (astro.Vec2{}) {
		local = astro.Vec2{X: 0, Y: -1}
	}
	dir := local.Rotate(-s.state.Rot)
	pos := s.state.Pos.Add(dir.Scale(2))
	vel := s.state.Vel.Add(dir.Scale(s.cfg.Flight.SeparationSpeed))

	s.debris = append(s.debris, newDebris(name, copies, pos, vel, s.state.Rot, s.state.AngVel))
	s.craft.Remove(ids)
	s.logf("staged: %s separated (%d parts)", name, len(sub))
}

// deploy pops every stowed parachute and extends every landing leg.
func (s *Sim) deploy() {
	var chutes, legs int
	for _, p := range s.craft.Parts() {
		if p.Deployed {
			continue
		}
		switch p.Spec.Class {
		case vessel.Parachute:
			p.Deployed = true
			chutes++
		case vessel.Leg:
			p.Deployed = true
			legs++
		}
	}
	if chutes > 0 {
		s.logf("parachutes deployed")
	}
	if legs > 0 {
		s.logf("landing legs extended")
	}
}
