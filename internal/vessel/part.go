package vessel

import "github.com/san-kum/apogee/internal/astro"

// Part is one placed instance of a catalog spec. Pos is the part center
// in craft-local coordinates with +Y toward the nose. ParentID zero marks
// the root.
type Part struct {
	ID         int
	Spec       *Spec
	ParentID   int
	ParentNode string
	Pos        astro.Vec2

	Fuel      float64
	Thrusting bool
	Deployed  bool
}

// TotalMass is dry mass plus stored propellant.
func (p *Part) TotalMass() float64 {
	return p.Spec.Mass + p.Fuel
}

// DragArea is the part's contribution to the craft's effective drag area.
// A deployed parachute multiplies its area by chuteFactor.
func (p *Part) DragArea(chuteFactor float64) float64 {
	area := p.Spec.Width * p.Spec.Width * p.Spec.Drag
	if p.Spec.Class == Parachute && p.Deployed {
		area *= chuteFactor
	}
	return area
}

// Clone copies the part instance. The spec pointer is shared.
func (p *Part) Clone() *Part {
	c := *p
	return &c
}
