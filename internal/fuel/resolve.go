package fuel

import (
	"math"
	"sort"

	"github.com/san-kum/apogee/internal/vessel"
)

// Params tunes the resolver thresholds.
type Params struct {
	// ThrottleEpsilon is the throttle below which no engine fires.
	ThrottleEpsilon float64
	// MinSupplyRatio is the fraction of demanded propellant an engine
	// must receive to produce any thrust.
	MinSupplyRatio float64
}

// Burn is the outcome of one propulsion tick across all engines.
type Burn struct {
	Thrust   float64 // total thrust force, N
	Consumed float64 // propellant drained, kg
}

type claim struct {
	engineID int
	tank     *vessel.Part
	amount   float64
}

// Resolve plans and commits one tick of propellant flow, mutating tank
// levels and engine Thrusting flags. Claims are planned per engine
// against a snapshot of tank levels, farthest tier first with tanks in a
// tier drained in proportion to their fuel. Commit then scales every
// claim on an oversubscribed tank by the same factor, so no tank goes
// negative and engine order never matters. Thrust scales with the
// fraction of demand met and cuts to zero below MinSupplyRatio.
func Resolve(v *vessel.Vessel, throttle, dt float64, p Params) Burn {
	engines := v.Engines()
	if throttle < p.ThrottleEpsilon || dt <= 0 {
		for _, eng := range engines {
			eng.Thrusting = false
		}
		return Burn{}
	}

	snapshot := make(map[int]float64)
	for _, part := range v.Parts() {
		if part.Spec.HasFuel() {
			snapshot[part.ID] = part.Fuel
		}
	}

	var claims []claim
	demands := make(map[int]float64)

	for _, eng := range engines {
		eng.Thrusting = false
		if StageBlocked(v, eng) {
			continue
		}
		want := eng.Spec.BurnRate * throttle * dt
		if want <= 0 {
			continue
		}
		demands[eng.ID] = want
		claims = planClaims(claims, eng, FindSources(v, eng), snapshot, want)
	}

	claimed := make(map[int]float64)
	for _, c := range claims {
		claimed[c.tank.ID] += c.amount
	}

	granted := make(map[int]float64)
	drained := make(map[int]float64)
	for _, c := range claims {
		scale := 1.0
		if total := claimed[c.tank.ID]; total > snapshot[c.tank.ID] && total > 0 {
			scale = snapshot[c.tank.ID] / total
		}
		got := c.amount * scale
		granted[c.engineID] += got
		drained[c.tank.ID] += got
	}

	var burn Burn
	for _, part := range v.Parts() {
		if amt := drained[part.ID]; amt > 0 {
			part.Fuel = math.Max(0, part.Fuel-amt)
			burn.Consumed += amt
		}
	}
	for _, eng := range engines {
		want := demands[eng.ID]
		if want <= 0 {
			continue
		}
		ratio := granted[eng.ID] / want
		if ratio < p.MinSupplyRatio {
			continue
		}
		eng.Thrusting = true
		burn.Thrust += eng.Spec.MaxThrust * throttle * ratio
	}
	return burn
}

// planClaims allocates one engine's demand across its sources, farthest
// distance tier first, splitting within a tier by snapshot fuel level.
func planClaims(claims []claim, eng *vessel.Part, sources []Source, snapshot map[int]float64, want float64) []claim {
	tiers := make(map[int][]Source)
	for _, s := range sources {
		tiers[s.Distance] = append(tiers[s.Distance], s)
	}
	distances := make([]int, 0, len(tiers))
	for d := range tiers {
		distances = append(distances, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distances)))

	remaining := want
	for _, d := range distances {
		if remaining <= 0 {
			break
		}
		var avail float64
		for _, s := range tiers[d] {
			avail += snapshot[s.Part.ID]
		}
		if avail <= 0 {
			continue
		}
		take := math.Min(remaining, avail)
		for _, s := range tiers[d] {
			share := take * snapshot[s.Part.ID] / avail
			if share > 0 {
				claims = append(claims, claim{engineID: eng.ID, tank: s.Part, amount: share})
			}
		}
		remaining -= take
	}
	return claims
}
