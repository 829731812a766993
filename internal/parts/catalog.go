package parts

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/vessel"
)

// Catalog holds every known part spec keyed by name. LoadOverlay can
// extend it from a YAML file at startup.
var Catalog = map[string]*vessel.Spec{
	"mk1-pod": {
		Name: "mk1-pod", Title: "Mk1 Command Pod", Class: vessel.Pod,
		Mass: 840, Width: 1.25, Drag: 0.2,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 0.55}, Kind: vessel.StackNode},
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.55}, Kind: vessel.StackNode},
		},
	},
	"para-1": {
		Name: "para-1", Title: "P-1 Parachute", Class: vessel.Parachute,
		// Sized so the heaviest stock stack settles under 10 m/s.
		Mass: 100, Width: 0.8, Drag: 0.45,
		Nodes: []vessel.AttachNode{
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.25}, Kind: vessel.StackNode},
		},
	},
	"tank-400": {
		Name: "tank-400", Title: "S-400 Fuel Tank", Class: vessel.Tank,
		Mass: 250, Width: 1.25, Drag: 0.2, FuelCapacity: 2000,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 0.55}, Kind: vessel.StackNode},
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.55}, Kind: vessel.StackNode},
			{ID: "left", Offset: astro.Vec2{X: -0.625, Y: 0}, Kind: vessel.RadialNode},
			{ID: "right", Offset: astro.Vec2{X: 0.625, Y: 0}, Kind: vessel.RadialNode},
		},
	},
	"tank-800": {
		Name: "tank-800", Title: "S-800 Fuel Tank", Class: vessel.Tank,
		Mass: 500, Width: 1.25, Drag: 0.2, FuelCapacity: 4000,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 0.9}, Kind: vessel.StackNode},
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.9}, Kind: vessel.StackNode},
			{ID: "left", Offset: astro.Vec2{X: -0.625, Y: 0}, Kind: vessel.RadialNode},
			{ID: "right", Offset: astro.Vec2{X: 0.625, Y: 0}, Kind: vessel.RadialNode},
		},
	},
	"tank-3200": {
		Name: "tank-3200", Title: "L-3200 Fuel Tank", Class: vessel.Tank,
		Mass: 2000, Width: 2.5, Drag: 0.25, FuelCapacity: 16_000,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 1.8}, Kind: vessel.StackNode},
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -1.8}, Kind: vessel.StackNode},
			{ID: "left", Offset: astro.Vec2{X: -1.25, Y: 0}, Kind: vessel.RadialNode},
			{ID: "right", Offset: astro.Vec2{X: 1.25, Y: 0}, Kind: vessel.RadialNode},
		},
	},
	"sparrow-60": {
		Name: "sparrow-60", Title: "Sparrow-60 Engine", Class: vessel.Engine,
		Mass: 450, Width: 1.25, Drag: 0.2, MaxThrust: 60_000, BurnRate: 22,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 0.4}, Kind: vessel.StackNode},
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.4}, Kind: vessel.StackNode},
		},
	},
	"hawk-215": {
		Name: "hawk-215", Title: "Hawk-215 Engine", Class: vessel.Engine,
		Mass: 1250, Width: 1.25, Drag: 0.2, MaxThrust: 215_000, BurnRate: 80,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 0.5}, Kind: vessel.StackNode},
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.5}, Kind: vessel.StackNode},
		},
	},
	"kestrel-650": {
		Name: "kestrel-650", Title: "Kestrel-650 Engine", Class: vessel.Engine,
		Mass: 3000, Width: 2.5, Drag: 0.25, MaxThrust: 650_000, BurnRate: 240,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 0.7}, Kind: vessel.StackNode},
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.7}, Kind: vessel.StackNode},
		},
	},
	"thumper": {
		Name: "thumper", Title: "Thumper Solid Booster", Class: vessel.Engine,
		Mass: 700, Width: 1.0, Drag: 0.3, MaxThrust: 162_000, BurnRate: 70, FuelCapacity: 2100,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 1.1}, Kind: vessel.StackNode},
			{ID: "mount", Offset: astro.Vec2{X: 0, Y: 0.6}, Kind: vessel.RadialNode},
		},
	},
	"dc-8": {
		Name: "dc-8", Title: "DC-8 Stack Decoupler", Class: vessel.Decoupler,
		Mass: 52, Width: 1.25, Drag: 0.2,
		Nodes: []vessel.AttachNode{
			{ID: "top", Offset: astro.Vec2{X: 0, Y: 0.1}, Kind: vessel.StackNode},
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.1}, Kind: vessel.StackNode},
		},
	},
	"rdc-4": {
		Name: "rdc-4", Title: "RDC-4 Radial Decoupler", Class: vessel.Decoupler,
		Mass: 40, Width: 0.4, Drag: 0.15, Radial: true,
		Nodes: []vessel.AttachNode{
			{ID: "outer", Offset: astro.Vec2{X: 0.2, Y: 0}, Kind: vessel.RadialNode},
		},
	},
	"nose-a": {
		Name: "nose-a", Title: "Aero Nose Cone", Class: vessel.Nose,
		Mass: 75, Width: 1.0, Drag: 0.1,
		Nodes: []vessel.AttachNode{
			{ID: "bottom", Offset: astro.Vec2{X: 0, Y: -0.4}, Kind: vessel.StackNode},
		},
	},
	"lt-1": {
		Name: "lt-1", Title: "LT-1 Landing Leg", Class: vessel.Leg,
		Mass: 50, Width: 0.4, Drag: 0.1,
	},
}

// Get returns the spec with the given name, or nil.
func Get(name string) *vessel.Spec {
	return Catalog[name]
}

// Names lists catalog entries in sorted order.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for name := range Catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadOverlay registers extra specs from a YAML file. Entries with a
// known name replace the stock spec. Returns how many specs were added
// or replaced.
func LoadOverlay(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var specs []*vessel.Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return 0, err
	}
	for i, s := range specs {
		if s.Name == "" {
			return 0, fmt.Errorf("parts: overlay entry %d has no name", i)
		}
		if s.Class == "" {
			return 0, fmt.Errorf("parts: overlay part %q has no class", s.Name)
		}
		Catalog[s.Name] = s
	}
	return len(specs), nil
}
