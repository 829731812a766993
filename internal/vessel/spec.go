package vessel

import "github.com/san-kum/apogee/internal/astro"

// Class identifies what a part does. Behavior keys off the class, not the
// part name, so catalog overlays can add parts freely.
type Class string

const (
	Pod       Class = "pod"
	Tank      Class = "tank"
	Engine    Class = "engine"
	Decoupler Class = "decoupler"
	Parachute Class = "parachute"
	Leg       Class = "leg"
	Nose      Class = "nose"
)

// NodeKind distinguishes inline stack joints from side-mounted ones.
type NodeKind string

const (
	StackNode  NodeKind = "stack"
	RadialNode NodeKind = "radial"
)

// AttachNode is a named connection point on a part, offset from the part
// center in craft-local coordinates.
type AttachNode struct {
	ID     string     `yaml:"id"`
	Offset astro.Vec2 `yaml:"offset"`
	Kind   NodeKind   `yaml:"kind"`
}

// Spec is the immutable catalog definition of a part type. Mass is dry
// mass in kg; FuelCapacity, MaxThrust and BurnRate are zero for classes
// they do not apply to.
type Spec struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Class Class  `yaml:"class"`

	Mass  float64 `yaml:"mass"`
	Width float64 `yaml:"width"`
	Drag  float64 `yaml:"drag"`

	FuelCapacity float64 `yaml:"fuel_capacity"`
	MaxThrust    float64 `yaml:"max_thrust"`
	BurnRate     float64 `yaml:"burn_rate"`

	// Radial marks decouplers that side-mount boosters. Only inline
	// stack decouplers hold an engine's ignition until staged.
	Radial bool `yaml:"radial"`

	Nodes []AttachNode `yaml:"nodes"`
}

// Node looks up an attachment node by id.
func (s *Spec) Node(id string) (AttachNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return AttachNode{}, false
}

// HasFuel reports whether parts of this spec store propellant.
func (s *Spec) HasFuel() bool {
	return s.FuelCapacity > 0
}

// IsStackDecoupler reports whether this spec severs an inline stack when
// fired.
func (s *Spec) IsStackDecoupler() bool {
	return s.Class == Decoupler && !s.Radial
}
