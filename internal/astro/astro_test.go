package astro

import (
	"math"
	"testing"

	"github.com/san-kum/apogee/internal/config"
)

func testEnv() *Environment {
	return NewEnvironment(config.DefaultConfig().Physics)
}

func TestHeading(t *testing.T) {
	h := Heading(0)
	if math.Abs(h.X) > 1e-12 || math.Abs(h.Y-1) > 1e-12 {
		t.Errorf("heading at rot 0: got (%.6f, %.6f), expected (0, 1)", h.X, h.Y)
	}
	h = Heading(math.Pi / 2)
	if math.Abs(h.X-1) > 1e-12 || math.Abs(h.Y) > 1e-12 {
		t.Errorf("heading at rot pi/2: got (%.6f, %.6f), expected (1, 0)", h.X, h.Y)
	}
}

func TestVectorRotate(t *testing.T) {
	v := Vec2{1, 0}.Rotate(math.Pi / 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("rotate: got (%.6f, %.6f), expected (0, 1)", v.X, v.Y)
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestDominantBody(t *testing.T) {
	env := testEnv()
	moonPos := env.MoonPos(0)

	body, center := env.Dominant(Vec2{env.Planet.Radius + 1000, 0}, 0)
	if body.Name != env.Planet.Name {
		t.Errorf("near surface: got %s, expected %s", body.Name, env.Planet.Name)
	}
	if center != (Vec2{}) {
		t.Errorf("planet center: got %+v, expected origin", center)
	}

	nearMoon := moonPos.Add(Vec2{env.Moon.Radius + 5000, 0})
	body, center = env.Dominant(nearMoon, 0)
	if body.Name != env.Moon.Name {
		t.Errorf("near moon: got %s, expected %s", body.Name, env.Moon.Name)
	}
	if center != moonPos {
		t.Errorf("moon center: got %+v, expected %+v", center, moonPos)
	}

	justOutside := moonPos.Add(Vec2{env.MoonSOI() * 1.01, 0})
	body, _ = env.Dominant(justOutside, 0)
	if body.Name != env.Planet.Name {
		t.Errorf("outside influence sphere: got %s, expected %s", body.Name, env.Planet.Name)
	}
}

func TestGravityDirection(t *testing.T) {
	env := testEnv()
	r := env.Planet.Radius + 10_000
	g := env.Gravity(Vec2{r, 0}, 0)

	if g.X >= 0 {
		t.Errorf("gravity should point toward the planet, got x component %.6f", g.X)
	}
	if math.Abs(g.Y) > 1e-9 {
		t.Errorf("gravity should be radial, got y component %.9f", g.Y)
	}
	expected := env.Planet.GM / (r * r)
	if math.Abs(g.Length()-expected) > 1e-9 {
		t.Errorf("gravity magnitude: got %.6f, expected %.6f", g.Length(), expected)
	}
}

func TestMoonGravityInsideInfluence(t *testing.T) {
	env := testEnv()
	moonPos := env.MoonPos(0)
	pos := moonPos.Add(Vec2{0, env.Moon.Radius + 20_000})

	g := env.Gravity(pos, 0)
	toMoon := moonPos.Sub(pos).Normalize()
	align := g.Normalize().Dot(toMoon)
	if align < 0.9999 {
		t.Errorf("gravity inside moon influence should point at the moon, alignment %.6f", align)
	}

	d := pos.Distance(moonPos)
	expected := env.Moon.GM / (d * d)
	if math.Abs(g.Length()-expected) > 1e-9 {
		t.Errorf("moon gravity magnitude: got %.9f, expected %.9f", g.Length(), expected)
	}
}

func TestMoonPeriod(t *testing.T) {
	env := testEnv()
	p0 := env.MoonPos(0)
	p1 := env.MoonPos(env.MoonPeriod())
	if p0.Distance(p1) > 1.0 {
		t.Errorf("moon should return to start after one period, drifted %.3f m", p0.Distance(p1))
	}
}

func TestDensityProfile(t *testing.T) {
	env := testEnv()
	surface := Vec2{env.Planet.Radius, 0}

	rho := env.Density(surface)
	if math.Abs(rho-env.SeaLevelDensity) > 1e-9 {
		t.Errorf("sea level density: got %.6f, expected %.6f", rho, env.SeaLevelDensity)
	}

	oneScale := Vec2{env.Planet.Radius + env.ScaleHeight, 0}
	expected := env.SeaLevelDensity / math.E
	if math.Abs(env.Density(oneScale)-expected) > 1e-6 {
		t.Errorf("density at one scale height: got %.6f, expected %.6f", env.Density(oneScale), expected)
	}

	above := Vec2{env.Planet.Radius + env.AtmosphereHeight + 1, 0}
	if env.Density(above) != 0 {
		t.Errorf("density above ceiling should be zero, got %.9f", env.Density(above))
	}
}

func TestDragOpposesVelocity(t *testing.T) {
	env := testEnv()
	pos := Vec2{env.Planet.Radius + 1000, 0}
	vel := Vec2{120, 40}

	f := env.Drag(pos, vel, 2.0)
	if f.Dot(vel) >= 0 {
		t.Error("drag should oppose velocity")
	}
	cross := f.Cross(vel)
	if math.Abs(cross) > 1e-6*f.Length()*vel.Length() {
		t.Error("drag should be antiparallel to velocity")
	}

	slow := Vec2{env.MinDragSpeed / 2, 0}
	if env.Drag(pos, slow, 2.0) != (Vec2{}) {
		t.Error("drag below the minimum speed should be zero")
	}

	vacuum := Vec2{env.Planet.Radius + env.AtmosphereHeight + 1000, 0}
	if env.Drag(vacuum, vel, 2.0) != (Vec2{}) {
		t.Error("drag above the atmosphere should be zero")
	}
}

func TestCircularOrbitElements(t *testing.T) {
	env := testEnv()
	r := env.Planet.Radius + 100_000
	pos := Vec2{r, 0}
	vel := Vec2{0, CircularSpeed(env.Planet.GM, r)}

	el := env.OrbitalElements(pos, vel, 0)
	if el.Body != env.Planet.Name {
		t.Errorf("elements body: got %s, expected %s", el.Body, env.Planet.Name)
	}
	if el.Eccentricity > 1e-9 {
		t.Errorf("circular orbit eccentricity: got %.12f, expected 0", el.Eccentricity)
	}
	if math.Abs(el.Apoapsis-100_000) > 1e-3 {
		t.Errorf("circular orbit apoapsis: got %.3f, expected 100000", el.Apoapsis)
	}
	if math.Abs(el.Periapsis-100_000) > 1e-3 {
		t.Errorf("circular orbit periapsis: got %.3f, expected 100000", el.Periapsis)
	}
	if math.Abs(el.SemiMajor-r) > 1e-3 {
		t.Errorf("circular orbit semi-major axis: got %.3f, expected %.3f", el.SemiMajor, r)
	}
}

func TestEllipticalOrbitElements(t *testing.T) {
	env := testEnv()
	rp := env.Planet.Radius + 80_000
	ra := env.Planet.Radius + 300_000
	a := (rp + ra) / 2
	vp := math.Sqrt(env.Planet.GM * (2/rp - 1/a))

	el := env.OrbitalElements(Vec2{rp, 0}, Vec2{0, vp}, 0)
	if math.Abs(el.Periapsis-80_000) > 1.0 {
		t.Errorf("periapsis: got %.3f, expected 80000", el.Periapsis)
	}
	if math.Abs(el.Apoapsis-300_000) > 1.0 {
		t.Errorf("apoapsis: got %.3f, expected 300000", el.Apoapsis)
	}
	if !el.Bound() {
		t.Error("elliptical orbit should be bound")
	}
}

func TestHyperbolicElements(t *testing.T) {
	env := testEnv()
	r := env.Planet.Radius + 100_000
	escape := math.Sqrt(2 * env.Planet.GM / r)

	el := env.OrbitalElements(Vec2{r, 0}, Vec2{0, escape * 1.2}, 0)
	if el.Eccentricity <= 1 {
		t.Errorf("hyperbolic eccentricity: got %.6f, expected > 1", el.Eccentricity)
	}
	if !math.IsInf(el.Apoapsis, 1) {
		t.Errorf("hyperbolic apoapsis should be infinite, got %.3f", el.Apoapsis)
	}
	if el.Bound() {
		t.Error("hyperbolic trajectory should not be bound")
	}
}

func TestMoonRelativeElements(t *testing.T) {
	env := testEnv()
	r := env.Moon.Radius + 30_000
	pos := env.MoonPos(0).Add(Vec2{r, 0})
	vel := env.MoonVel(0).Add(Vec2{0, CircularSpeed(env.Moon.GM, r)})

	el := env.OrbitalElements(pos, vel, 0)
	if el.Body != env.Moon.Name {
		t.Errorf("elements body: got %s, expected %s", el.Body, env.Moon.Name)
	}
	if el.Eccentricity > 1e-6 {
		t.Errorf("moon circular orbit eccentricity: got %.9f, expected 0", el.Eccentricity)
	}
	if math.Abs(el.Apoapsis-30_000) > 1e-2 {
		t.Errorf("moon orbit apoapsis: got %.3f, expected 30000", el.Apoapsis)
	}
}
