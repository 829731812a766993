package vessel

import (
	"fmt"
	"math"

	"github.com/san-kum/apogee/internal/astro"
)

// Vessel is a validated part tree. Parts keep their insertion order;
// traversal order is deterministic.
type Vessel struct {
	parts    []*Part
	byID     map[int]*Part
	children map[int][]int
	rootID   int
}

// Build validates a part list and assembles the tree. It rejects empty
// lists, duplicate ids, missing parents, missing attachment nodes, zero
// or multiple roots, and parts not reachable from the root. Fuel is
// clamped to capacity.
func Build(parts []*Part) (*Vessel, error) {
	if len(parts) == 0 {
		return nil, ErrNoParts
	}

	v := &Vessel{
		byID:     make(map[int]*Part, len(parts)),
		children: make(map[int][]int),
		rootID:   -1,
	}
	for _, p := range parts {
		if p.Spec == nil {
			return nil, fmt.Errorf("%w: part %d", ErrMissingSpec, p.ID)
		}
		if _, dup := v.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		v.byID[p.ID] = p
	}

	for _, p := range parts {
		if p.ParentID == 0 {
			if v.rootID >= 0 {
				return nil, fmt.Errorf("%w: %d and %d", ErrMultipleRoots, v.rootID, p.ID)
			}
			v.rootID = p.ID
			continue
		}
		parent, ok := v.byID[p.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: part %d references %d", ErrMissingParent, p.ID, p.ParentID)
		}
		if p.ParentNode != "" {
			if _, ok := parent.Spec.Node(p.ParentNode); !ok {
				return nil, fmt.Errorf("%w: part %d on %s.%s", ErrMissingNode, p.ID, parent.Spec.Name, p.ParentNode)
			}
		}
		v.children[p.ParentID] = append(v.children[p.ParentID], p.ID)
	}
	if v.rootID < 0 {
		return nil, ErrNoRoot
	}

	for _, p := range parts {
		p.Fuel = math.Max(0, math.Min(p.Fuel, p.Spec.FuelCapacity))
		v.parts = append(v.parts, p)
	}

	// Single root plus existing parents means any unreachable part sits
	// on a parent cycle.
	if reached := len(v.Subtree(v.rootID)); reached != len(parts) {
		return nil, fmt.Errorf("%w: reached %d of %d parts", ErrNotConnected, reached, len(parts))
	}
	return v, nil
}

// Root returns the root part.
func (v *Vessel) Root() *Part {
	return v.byID[v.rootID]
}

// Part returns the part with the given id, or nil.
func (v *Vessel) Part(id int) *Part {
	return v.byID[id]
}

// Parts returns all parts in insertion order. The slice is shared; do not
// reorder it.
func (v *Vessel) Parts() []*Part {
	return v.parts
}

// Count returns the number of parts.
func (v *Vessel) Count() int {
	return len(v.parts)
}

// Children returns the direct children of a part in attachment order.
func (v *Vessel) Children(id int) []*Part {
	ids := v.children[id]
	out := make([]*Part, 0, len(ids))
	for _, cid := range ids {
		out = append(out, v.byID[cid])
	}
	return out
}

// Parent returns a part's parent, or nil for the root.
func (v *Vessel) Parent(id int) *Part {
	p := v.byID[id]
	if p == nil || p.ParentID == 0 {
		return nil
	}
	return v.byID[p.ParentID]
}

// Subtree returns the part with the given id and every descendant,
// depth-first in attachment order.
func (v *Vessel) Subtree(id int) []*Part {
	start := v.byID[id]
	if start == nil {
		return nil
	}
	var out []*Part
	stack := []int{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, v.byID[cur])
		kids := v.children[cur]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// Remove detaches the given parts from the vessel. Removing a part that
// still has attached children outside the set would orphan them, so
// callers pass whole subtrees.
func (v *Vessel) Remove(ids map[int]bool) {
	kept := v.parts[:0]
	for _, p := range v.parts {
		if ids[p.ID] {
			delete(v.byID, p.ID)
			delete(v.children, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	v.parts = kept
	for pid, kids := range v.children {
		filtered := kids[:0]
		for _, cid := range kids {
			if !ids[cid] {
				filtered = append(filtered, cid)
			}
		}
		v.children[pid] = filtered
	}
}

// Clone deep-copies the vessel. Part specs are shared since the catalog
// is immutable.
func (v *Vessel) Clone() *Vessel {
	parts := make([]*Part, 0, len(v.parts))
	for _, p := range v.parts {
		parts = append(parts, p.Clone())
	}
	c, err := Build(parts)
	if err != nil {
		// A validated vessel stays valid under copy.
		panic(err)
	}
	return c
}

// Mass is the total vehicle mass including propellant.
func (v *Vessel) Mass() float64 {
	var m float64
	for _, p := range v.parts {
		m += p.TotalMass()
	}
	return m
}

// FuelRemaining sums propellant across all parts.
func (v *Vessel) FuelRemaining() float64 {
	var f float64
	for _, p := range v.parts {
		f += p.Fuel
	}
	return f
}

// FuelCapacity sums propellant capacity across all parts.
func (v *Vessel) FuelCapacity() float64 {
	var f float64
	for _, p := range v.parts {
		f += p.Spec.FuelCapacity
	}
	return f
}

// DragArea is the craft's effective drag area: the summed per-part areas
// with deployed parachutes scaled by chuteFactor.
func (v *Vessel) DragArea(chuteFactor float64) float64 {
	var a float64
	for _, p := range v.parts {
		a += p.DragArea(chuteFactor)
	}
	return a
}

// CenterOfMass is the mass-weighted part center in craft coordinates.
func (v *Vessel) CenterOfMass() astro.Vec2 {
	var com astro.Vec2
	m := v.Mass()
	if m == 0 {
		return com
	}
	for _, p := range v.parts {
		com = com.Add(p.Pos.Scale(p.TotalMass()))
	}
	return com.Scale(1 / m)
}

// MomentOfInertia approximates rotational inertia about the center of
// mass, with a base term so single-part craft still resist spin.
func (v *Vessel) MomentOfInertia(base float64) float64 {
	com := v.CenterOfMass()
	var inertia float64
	for _, p := range v.parts {
		d := p.Pos.Sub(com).LengthSq()
		inertia += p.TotalMass() * (base + d)
	}
	return inertia
}

// Engines returns all engine parts in order.
func (v *Vessel) Engines() []*Part {
	return v.byClass(Engine)
}

// Decouplers returns all decoupler parts in order.
func (v *Vessel) Decouplers() []*Part {
	return v.byClass(Decoupler)
}

// Parachutes returns all parachute parts in order.
func (v *Vessel) Parachutes() []*Part {
	return v.byClass(Parachute)
}

func (v *Vessel) byClass(c Class) []*Part {
	var out []*Part
	for _, p := range v.parts {
		if p.Spec.Class == c {
			out = append(out, p)
		}
	}
	return out
}

// NextDecoupler picks the decoupler a stage command fires: the lowest
// along craft-local Y, breaking ties by lower part id.
func (v *Vessel) NextDecoupler() *Part {
	var best *Part
	for _, p := range v.parts {
		if p.Spec.Class != Decoupler {
			continue
		}
		if best == nil || p.Pos.Y < best.Pos.Y || (p.Pos.Y == best.Pos.Y && p.ID < best.ID) {
			best = p
		}
	}
	return best
}
