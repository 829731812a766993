package fuel

import "github.com/san-kum/apogee/internal/vessel"

// Source is a propellant-bearing part reachable from an engine, tagged
// with its hop distance through the attachment tree.
type Source struct {
	Part     *vessel.Part
	Distance int
}

// FindSources walks the tree from an engine through parent and child
// joints and collects every part that stores propellant, nearest first.
// A decoupler seals its joints, so traversal never enters one. An engine
// with its own internal tank is a source at distance zero.
func FindSources(v *vessel.Vessel, engine *vessel.Part) []Source {
	if engine == nil {
		return nil
	}

	var sources []Source
	visited := map[int]bool{engine.ID: true}
	type hop struct {
		part *vessel.Part
		dist int
	}
	queue := []hop{{engine, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.part.Spec.HasFuel() {
			sources = append(sources, Source{Part: cur.part, Distance: cur.dist})
		}

		neighbors := v.Children(cur.part.ID)
		if parent := v.Parent(cur.part.ID); parent != nil {
			neighbors = append(neighbors, parent)
		}
		for _, n := range neighbors {
			if visited[n.ID] || n.Spec.Class == vessel.Decoupler {
				continue
			}
			visited[n.ID] = true
			queue = append(queue, hop{n, cur.dist + 1})
		}
	}
	return sources
}

// StageBlocked reports whether an inline stack decoupler sits below the
// engine. Firing through an attached lower stage is not allowed, so a
// blocked engine stays dark until that stage separates. Radial
// decouplers hang side boosters and do not block.
func StageBlocked(v *vessel.Vessel, engine *vessel.Part) bool {
	for _, p := range v.Subtree(engine.ID) {
		if p.Spec.IsStackDecoupler() {
			return true
		}
	}
	return false
}
