package mission

import (
	"context"

	"github.com/san-kum/apogee/internal/flight"
)

// Player replays a plan tick by tick. Throttle, turn, mode and warp
// latch until a later action changes them; stage and deploy pulse for
// exactly one tick.
type Player struct {
	plan  *Plan
	next  int
	latch flight.Input
}

func NewPlayer(plan *Plan) *Player {
	return &Player{plan: plan, latch: flight.Input{Warp: 1}}
}

// Input returns the control input for mission time t, applying every
// action that has come due since the previous call.
func (p *Player) Input(t float64) flight.Input {
	var stage, deploy bool
	for p.next < len(p.plan.Actions) && p.plan.Actions[p.next].At <= t {
		a := p.plan.Actions[p.next]
		p.next++
		if a.Throttle != nil {
			p.latch.Throttle = *a.Throttle
		}
		if a.Turn != nil {
			p.latch.Turn = *a.Turn
		}
		if a.Mode != "" {
			if m, ok := flight.ParseMode(a.Mode); ok {
				p.latch.Mode = m
			}
		}
		if a.Warp != nil {
			p.latch.Warp = *a.Warp
		}
		stage = stage || a.Stage
		deploy = deploy || a.Deploy
	}
	in := p.latch
	in.Stage = stage
	in.Deploy = deploy
	return in
}

// Done reports whether every action has fired.
func (p *Player) Done() bool {
	return p.next >= len(p.plan.Actions)
}

// Fly replays a plan against a simulation until the plan duration runs
// out or the flight reaches a terminal state.
func Fly(ctx context.Context, s *flight.Sim, plan *Plan) (*flight.State, error) {
	player := NewPlayer(plan)
	return s.Run(ctx, plan.Duration, player.Input)
}
