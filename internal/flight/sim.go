package flight

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/config"
	"github.com/san-kum/apogee/internal/fuel"
	"github.com/san-kum/apogee/internal/vessel"
)

// Metric accumulates a scalar over a flight.
type Metric interface {
	Name() string
	Observe(s *State)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnStep(s *State)
}

// Sim owns one craft's flight from the pad to a terminal state. It is
// not safe for concurrent use; drive it from a single goroutine.
type Sim struct {
	cfg   *config.Config
	env   *astro.Environment
	craft *vessel.Vessel
	ap    *Autopilot
	integ rk4

	state     State
	debris    []*Debris
	liftedOff bool
	prevBody  string
	inAtmo    bool

	fuelParams fuel.Params

	metrics   []Metric
	observers []Observer
}

// New validates the part list and puts the craft on the pad, nose up,
// resting on the planet surface at the configured launch angle.
func New(cfg *config.Config, parts []*vessel.Part) (*Sim, error) {
	craft, err := vessel.Build(parts)
	if err != nil {
		return nil, err
	}
	env := astro.NewEnvironment(cfg.Physics)
	launch := cfg.Flight.LaunchAngleDeg * math.Pi / 180

	s := &Sim{
		cfg:   cfg,
		env:   env,
		craft: craft,
		ap:    NewAutopilot(cfg.Flight),
		fuelParams: fuel.Params{
			ThrottleEpsilon: cfg.Flight.ThrottleEpsilon,
			MinSupplyRatio:  cfg.Flight.MinSupplyRatio,
		},
		prevBody: env.Planet.Name,
		inAtmo:   true,
	}
	s.state = State{
		Pos:     astro.FromPolar(launch, env.Planet.Radius),
		Rot:     math.Pi/2 - launch,
		Body:    env.Planet.Name,
		Mass:    craft.Mass(),
		Fuel:    craft.FuelRemaining(),
		FuelCap: craft.FuelCapacity(),
		Warp:    1,
	}
	s.state.Elements = env.OrbitalElements(s.state.Pos, s.state.Vel, 0)
	return s, nil
}

func (s *Sim) State() *State           { return &s.state }
func (s *Sim) Craft() *vessel.Vessel   { return s.craft }
func (s *Sim) Env() *astro.Environment { return s.env }
func (s *Sim) Debris() []*Debris       { return s.debris }
func (s *Sim) Config() *config.Config  { return s.cfg }
func (s *Sim) AddMetric(m Metric)      { s.metrics = append(s.metrics, m) }
func (s *Sim) AddObserver(o Observer)  { s.observers = append(s.observers, o) }

// MetricValues snapshots all registered metrics.
func (s *Sim) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Step advances the flight one tick under the given input. The tick
// pipeline: apply pulses, resolve propellant once, then integrate the
// rigid body through fixed substeps with surface contact checked after
// each. Once the status is terminal the state freezes and Step is a
// no-op.
func (s *Sim) Step(in Input) error {
	if s.state.Status != StatusFlying {
		return nil
	}
	fl := s.cfg.Flight

	warp := math.Max(1, math.Min(in.Warp, fl.MaxTimeWarp))
	effDt := fl.Dt * warp
	s.state.Throttle = clamp(in.Throttle, 0, 1)
	s.state.Mode = in.Mode
	s.state.Warp = warp

	if in.Stage {
		s.stage()
	}
	if in.Deploy {
		s.deploy()
	}

	burn := fuel.Resolve(s.craft, s.state.Throttle, effDt, s.fuelParams)
	mass := math.Max(s.craft.Mass(), fl.MinMass)
	inertia := math.Max(s.craft.MomentOfInertia(fl.InertiaFactor), fl.MinInertia)
	area := s.craft.DragArea(s.env.ChuteDragFactor)

	forces := &tickForces{
		env:     s.env,
		mass:    mass,
		inertia: inertia,
		thrust:  burn.Thrust,
		area:    area,
		torque:  s.ap.torque(in.Mode, clamp(in.Turn, -1, 1), inertia),
	}

	x := kinState{s.state.Pos.X, s.state.Pos.Y, s.state.Vel.X, s.state.Vel.Y, s.state.Rot, s.state.AngVel}
	t := s.state.Time
	h := effDt / float64(fl.Substeps)

	for i := 0; i < fl.Substeps; i++ {
		next := s.integ.step(forces.derive, x, t, h)
		if !next.valid() {
			s.state.Status = StatusFailed
			s.logf("flight aborted: state diverged")
			s.commit(x, effDt, burn, mass, area)
			return &FlightError{Time: t, Wrapped: ErrUnstable}
		}
		x = next
		t += h
		x = s.resolveContact(x, t)
		if alt := s.env.Altitude(astro.Vec2{X: x[0], Y: x[1]}, t); alt > s.state.MaxAltitude {
			s.state.MaxAltitude = alt
		}
		if s.state.Status != StatusFlying {
			break
		}
	}

	s.commit(x, effDt, burn, mass, area)
	return nil
}

// commit writes the integrated state back, refreshes the derived
// readout, advances debris and notifies metrics and observers.
func (s *Sim) commit(x kinState, effDt float64, burn fuel.Burn, mass, area float64) {
	s.state.Pos = astro.Vec2{X: x[0], Y: x[1]}
	s.state.Vel = astro.Vec2{X: x[2], Y: x[3]}
	s.state.Rot = wrapAngle(x[4])
	s.state.AngVel = x[5]
	s.state.Time += effDt

	t := s.state.Time
	pos, vel := s.state.Pos, s.state.Vel
	body, center := s.env.Dominant(pos, t)
	rel := vel
	if body.Name == s.env.Moon.Name {
		rel = vel.Sub(s.env.MoonVel(t))
	}
	rhat := pos.Sub(center).Normalize()

	s.state.Body = body.Name
	s.state.Altitude = pos.Distance(center) - body.Radius
	s.state.Speed = rel.Length()
	s.state.VerticalSpeed = rel.Dot(rhat)
	s.state.HorizontalSpeed = math.Abs(rel.Cross(rhat))
	s.state.Mass = mass
	s.state.Fuel = s.craft.FuelRemaining()
	s.state.FuelCap = s.craft.FuelCapacity()
	s.state.Burned += burn.Consumed
	s.state.Thrust = burn.Thrust
	s.state.Elements = s.env.OrbitalElements(pos, vel, t)
	s.state.GravityF = s.env.Gravity(pos, t).Scale(mass)
	s.state.DragF = s.env.Drag(pos, vel, area)
	s.state.ThrustF = astro.Heading(s.state.Rot).Scale(burn.Thrust)

	s.updateDebris(effDt)
	s.noteMilestones()

	for _, m := range s.metrics {
		m.Observe(&s.state)
	}
	for _, o := range s.observers {
		o.OnStep(&s.state)
	}
}

func (s *Sim) updateDebris(dt float64) {
	alive := s.debris[:0]
	for _, d := range s.debris {
		if d.update(s.env, s.state.Time, dt) {
			alive = append(alive, d)
		}
	}
	s.debris = alive
}

func (s *Sim) noteMilestones() {
	if !s.liftedOff && s.state.Altitude > 2 {
		s.liftedOff = true
		s.logf("liftoff")
	}
	if s.state.Body != s.prevBody {
		s.logf("entered %s's sphere of influence", s.state.Body)
		s.prevBody = s.state.Body
	}
	inAtmo := s.env.PlanetAltitude(s.state.Pos) < s.env.AtmosphereHeight
	if inAtmo != s.inAtmo {
		if inAtmo {
			s.logf("atmospheric interface")
		} else {
			s.logf("left the atmosphere")
		}
		s.inAtmo = inAtmo
	}
}

// Run flies headless until the craft reaches a terminal state, the
// duration elapses, or the context is canceled. control supplies the
// input for each tick.
func (s *Sim) Run(ctx context.Context, duration float64, control func(t float64) Input) (*State, error) {
	for _, m := range s.metrics {
		m.Reset()
	}
	for s.state.Status == StatusFlying && s.state.Time < duration {
		select {
		case <-ctx.Done():
			return &s.state, &FlightError{Time: s.state.Time, Wrapped: ErrInterrupted}
		default:
		}
		if err := s.Step(control(s.state.Time)); err != nil {
			return &s.state, err
		}
	}
	return &s.state, nil
}

func (s *Sim) logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.state.Events = append(s.state.Events, fmt.Sprintf("T+%s %s", clock(s.state.Time), msg))
}

func clock(t float64) string {
	sec := int(t)
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
