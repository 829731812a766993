package astro

import "math"

// Elements are the osculating orbital elements of a trajectory about one
// body. Apoapsis and Periapsis are altitudes above the surface; Apoapsis
// is +Inf for unbound trajectories.
type Elements struct {
	Body         string
	SemiMajor    float64
	Eccentricity float64
	Apoapsis     float64
	Periapsis    float64
	Period       float64
}

// OrbitalElements computes the osculating elements at (pos, vel) about
// whichever body dominates there. Inside the moon's sphere of influence
// velocity is taken relative to the moon.
func (e *Environment) OrbitalElements(pos, vel Vec2, t float64) Elements {
	body, center := e.Dominant(pos, t)
	relVel := vel
	if body.Name == e.Moon.Name {
		relVel = vel.Sub(e.MoonVel(t))
	}
	return conicElements(pos.Sub(center), relVel, body)
}

func conicElements(r, v Vec2, body Body) Elements {
	dist := r.Length()
	if dist == 0 {
		return Elements{Body: body.Name}
	}
	energy := v.LengthSq()/2 - body.GM/dist
	h := r.Cross(v)
	ecc := math.Sqrt(math.Max(0, 1+2*energy*h*h/(body.GM*body.GM)))

	el := Elements{Body: body.Name, Eccentricity: ecc}
	if energy != 0 {
		el.SemiMajor = -body.GM / (2 * energy)
	} else {
		el.SemiMajor = math.Inf(1)
	}

	// Semi-latus rectum form stays finite for every conic.
	p := h * h / body.GM
	el.Periapsis = p/(1+ecc) - body.Radius
	if ecc < 1 {
		el.Apoapsis = p/(1-ecc) - body.Radius
		el.Period = 2 * math.Pi * math.Sqrt(el.SemiMajor*el.SemiMajor*el.SemiMajor/body.GM)
	} else {
		el.Apoapsis = math.Inf(1)
		el.Period = math.Inf(1)
	}
	return el
}

// Bound reports whether the trajectory is a closed orbit.
func (el Elements) Bound() bool {
	return el.Eccentricity < 1 && !math.IsInf(el.Apoapsis, 1)
}
