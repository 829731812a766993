package astro

import "math"

// Gravity returns gravitational acceleration at pos under the patched
// conic rule: only the dominant body pulls.
func (e *Environment) Gravity(pos Vec2, t float64) Vec2 {
	body, center := e.Dominant(pos, t)
	return pointGravity(pos, center, body.GM)
}

func pointGravity(pos, center Vec2, gm float64) Vec2 {
	r := pos.Sub(center)
	d2 := r.LengthSq()
	if d2 == 0 {
		return Vec2{}
	}
	return r.Scale(-gm / (d2 * math.Sqrt(d2)))
}

// SurfaceGravity is the gravitational acceleration at a body's surface.
func (b Body) SurfaceGravity() float64 {
	return b.GM / (b.Radius * b.Radius)
}
