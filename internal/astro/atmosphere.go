package astro

import "math"

// Density returns atmospheric density at a position. Only the planet has
// an atmosphere; above the ceiling density is exactly zero.
func (e *Environment) Density(pos Vec2) float64 {
	alt := e.PlanetAltitude(pos)
	if alt >= e.AtmosphereHeight {
		return 0
	}
	if alt < 0 {
		alt = 0
	}
	return e.SeaLevelDensity * math.Exp(-alt/e.ScaleHeight)
}

// Drag returns the aerodynamic drag force on a vehicle with the given
// effective area, opposing the velocity. Below MinDragSpeed the force is
// zero so a vehicle at rest on the pad stays numerically at rest.
func (e *Environment) Drag(pos, vel Vec2, area float64) Vec2 {
	speed := vel.Length()
	if speed < e.MinDragSpeed {
		return Vec2{}
	}
	rho := e.Density(pos)
	if rho == 0 || area <= 0 {
		return Vec2{}
	}
	mag := 0.5 * rho * speed * speed * area * e.DragFactor
	return vel.Scale(-mag / speed)
}
