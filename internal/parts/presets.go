package parts

import (
	"sort"

	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/vessel"
)

// Craft maps stock craft names to builders. Builders return fresh parts
// with full tanks, positioned in craft coordinates with +Y up.
var Craft = map[string]func() []*vessel.Part{
	"sounder":      Sounder,
	"hopper":       Hopper,
	"orbiter":      Orbiter,
	"luna-express": LunaExpress,
}

// Blurb is a one-line description per stock craft.
var Blurb = map[string]string{
	"sounder":      "single stage suborbital probe with a recovery chute",
	"hopper":       "low thrust trainer with landing legs for powered touchdowns",
	"orbiter":      "two stage orbital launcher with twin solid boosters",
	"luna-express": "three stage stack sized for a one way trip to the moon",
}

// GetCraft builds the named stock craft, or returns nil.
func GetCraft(name string) []*vessel.Part {
	build, ok := Craft[name]
	if !ok {
		return nil
	}
	return build()
}

// CraftNames lists stock craft in sorted order.
func CraftNames() []string {
	names := make([]string, 0, len(Craft))
	for name := range Craft {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func spec(name string) *vessel.Spec {
	return Catalog[name]
}

func full(name string) float64 {
	return Catalog[name].FuelCapacity
}

// Sounder is a pod, chute, one tank and one engine. No decouplers, so a
// stage command goes straight to the parachute.
func Sounder() []*vessel.Part {
	return []*vessel.Part{
		{ID: 1, Spec: spec("mk1-pod"), Pos: astro.Vec2{X: 0, Y: 0}},
		{ID: 2, Spec: spec("para-1"), ParentID: 1, ParentNode: "top", Pos: astro.Vec2{X: 0, Y: 0.8}},
		{ID: 3, Spec: spec("tank-800"), ParentID: 1, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -1.45}, Fuel: full("tank-800")},
		{ID: 4, Spec: spec("hawk-215"), ParentID: 3, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -2.85}},
	}
}

// Hopper trades thrust for burn time and carries legs for soft landings.
func Hopper() []*vessel.Part {
	return []*vessel.Part{
		{ID: 1, Spec: spec("mk1-pod"), Pos: astro.Vec2{X: 0, Y: 0}},
		{ID: 2, Spec: spec("para-1"), ParentID: 1, ParentNode: "top", Pos: astro.Vec2{X: 0, Y: 0.8}},
		{ID: 3, Spec: spec("tank-400"), ParentID: 1, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -1.1}, Fuel: full("tank-400")},
		{ID: 4, Spec: spec("sparrow-60"), ParentID: 3, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -2.05}},
		{ID: 5, Spec: spec("lt-1"), ParentID: 3, ParentNode: "left", Pos: astro.Vec2{X: -0.825, Y: -1.1}},
		{ID: 6, Spec: spec("lt-1"), ParentID: 3, ParentNode: "right", Pos: astro.Vec2{X: 0.825, Y: -1.1}},
	}
}

// Orbiter stacks a sustainer core under a light upper stage and hangs a
// solid booster off each side. Staging order: boosters, then the core.
func Orbiter() []*vessel.Part {
	return []*vessel.Part{
		{ID: 1, Spec: spec("mk1-pod"), Pos: astro.Vec2{X: 0, Y: 0}},
		{ID: 2, Spec: spec("para-1"), ParentID: 1, ParentNode: "top", Pos: astro.Vec2{X: 0, Y: 0.8}},
		{ID: 3, Spec: spec("tank-400"), ParentID: 1, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -1.1}, Fuel: full("tank-400")},
		{ID: 4, Spec: spec("sparrow-60"), ParentID: 3, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -2.05}},
		{ID: 5, Spec: spec("dc-8"), ParentID: 4, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -2.55}},
		{ID: 6, Spec: spec("tank-800"), ParentID: 5, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -3.55}, Fuel: full("tank-800")},
		{ID: 7, Spec: spec("hawk-215"), ParentID: 6, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -4.95}},
		{ID: 8, Spec: spec("rdc-4"), ParentID: 6, ParentNode: "left", Pos: astro.Vec2{X: -0.825, Y: -3.55}},
		{ID: 9, Spec: spec("thumper"), ParentID: 8, ParentNode: "outer", Pos: astro.Vec2{X: -1.25, Y: -4.15}, Fuel: full("thumper")},
		{ID: 10, Spec: spec("rdc-4"), ParentID: 6, ParentNode: "right", Pos: astro.Vec2{X: 0.825, Y: -3.55}},
		{ID: 11, Spec: spec("thumper"), ParentID: 10, ParentNode: "outer", Pos: astro.Vec2{X: 1.25, Y: -4.15}, Fuel: full("thumper")},
	}
}

// LunaExpress is three serial stages. The first two climb out and
// circularize, the third handles the transfer burn and capture.
func LunaExpress() []*vessel.Part {
	return []*vessel.Part{
		{ID: 1, Spec: spec("mk1-pod"), Pos: astro.Vec2{X: 0, Y: 0}},
		{ID: 2, Spec: spec("para-1"), ParentID: 1, ParentNode: "top", Pos: astro.Vec2{X: 0, Y: 0.8}},
		{ID: 3, Spec: spec("tank-400"), ParentID: 1, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -1.1}, Fuel: full("tank-400")},
		{ID: 4, Spec: spec("sparrow-60"), ParentID: 3, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -2.05}},
		{ID: 5, Spec: spec("dc-8"), ParentID: 4, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -2.55}},
		{ID: 6, Spec: spec("tank-800"), ParentID: 5, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -3.55}, Fuel: full("tank-800")},
		{ID: 7, Spec: spec("hawk-215"), ParentID: 6, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -4.95}},
		{ID: 8, Spec: spec("dc-8"), ParentID: 7, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -5.55}},
		{ID: 9, Spec: spec("tank-3200"), ParentID: 8, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -7.45}, Fuel: full("tank-3200")},
		{ID: 10, Spec: spec("kestrel-650"), ParentID: 9, ParentNode: "bottom", Pos: astro.Vec2{X: 0, Y: -9.95}},
	}
}
