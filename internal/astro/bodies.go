package astro

import (
	"math"

	"github.com/san-kum/apogee/internal/config"
)

// Body is a gravitating sphere. Position is a function of time for the
// moon and fixed at the origin for the planet.
type Body struct {
	Name   string
	GM     float64
	Radius float64
}

// Environment is the immutable world the simulation runs in: one planet at
// the origin, one moon on a circular orbit, and the planet's atmosphere.
// Derived quantities (sphere of influence, moon mean motion) are computed
// once at construction.
type Environment struct {
	Planet Body
	Moon   Body

	MoonOrbit     float64
	MoonInitAngle float64

	AtmosphereHeight float64
	ScaleHeight      float64
	SeaLevelDensity  float64
	DragFactor       float64
	ChuteDragFactor  float64
	MinDragSpeed     float64

	moonMeanMotion float64
	moonSOI        float64
}

// NewEnvironment derives the runtime world from physics config.
func NewEnvironment(p config.Physics) *Environment {
	env := &Environment{
		Planet:           Body{Name: p.PlanetName, GM: p.PlanetGM, Radius: p.PlanetRadius},
		Moon:             Body{Name: p.MoonName, GM: p.MoonGM, Radius: p.MoonRadius},
		MoonOrbit:        p.MoonOrbit,
		MoonInitAngle:    p.MoonInitAngle,
		AtmosphereHeight: p.AtmosphereHeight,
		ScaleHeight:      p.ScaleHeight,
		SeaLevelDensity:  p.SeaLevelDensity,
		DragFactor:       p.DragFactor,
		ChuteDragFactor:  p.ChuteDragFactor,
		MinDragSpeed:     p.MinDragSpeed,
	}
	env.moonMeanMotion = math.Sqrt(p.PlanetGM / (p.MoonOrbit * p.MoonOrbit * p.MoonOrbit))
	env.moonSOI = p.MoonOrbit * math.Pow(p.MoonGM/p.PlanetGM, 2.0/5.0)
	return env
}

// MoonPos returns the moon's center at simulation time t. The moon moves
// on an ideal circle and is not perturbed by anything.
func (e *Environment) MoonPos(t float64) Vec2 {
	return FromPolar(e.MoonInitAngle+e.moonMeanMotion*t, e.MoonOrbit)
}

// MoonVel returns the moon's orbital velocity at time t.
func (e *Environment) MoonVel(t float64) Vec2 {
	angle := e.MoonInitAngle + e.moonMeanMotion*t
	speed := e.moonMeanMotion * e.MoonOrbit
	return FromPolar(angle+math.Pi/2, speed)
}

// MoonSOI is the moon's sphere-of-influence radius.
func (e *Environment) MoonSOI() float64 {
	return e.moonSOI
}

// MoonPeriod is the moon's orbital period in seconds.
func (e *Environment) MoonPeriod() float64 {
	return 2 * math.Pi / e.moonMeanMotion
}

// Dominant picks the body whose gravity applies at pos: the moon inside
// its sphere of influence, the planet everywhere else. The second return
// is the body's center at time t.
func (e *Environment) Dominant(pos Vec2, t float64) (Body, Vec2) {
	mp := e.MoonPos(t)
	if pos.Distance(mp) < e.moonSOI {
		return e.Moon, mp
	}
	return e.Planet, Vec2{}
}

// Altitude returns height above the dominant body's surface.
func (e *Environment) Altitude(pos Vec2, t float64) float64 {
	body, center := e.Dominant(pos, t)
	return pos.Distance(center) - body.Radius
}

// PlanetAltitude returns height above the planet's surface regardless of
// which body dominates.
func (e *Environment) PlanetAltitude(pos Vec2) float64 {
	return pos.Length() - e.Planet.Radius
}

// CircularSpeed is the speed of a circular orbit of radius r about a body.
func CircularSpeed(gm, r float64) float64 {
	return math.Sqrt(gm / r)
}
