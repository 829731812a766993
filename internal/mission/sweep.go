package mission

import (
	"context"
	"sync"

	"github.com/san-kum/apogee/internal/config"
	"github.com/san-kum/apogee/internal/flight"
	"github.com/san-kum/apogee/internal/telemetry"
	"github.com/san-kum/apogee/internal/vessel"
)

// SweepResult is the outcome of one launch-angle trial.
type SweepResult struct {
	AngleDeg    float64
	Status      flight.Status
	Time        float64
	MaxAltitude float64
	Downrange   float64
	FuelBurned  float64
}

// RunSweep flies the same plan once per launch angle, each trial in its
// own goroutine with its own craft and config. build must return a fresh
// part list on every call.
func RunSweep(ctx context.Context, cfg *config.Config, build func() []*vessel.Part, plan *Plan, angles []float64) ([]SweepResult, error) {
	results := make([]SweepResult, len(angles))
	errs := make([]error, len(angles))

	var wg sync.WaitGroup
	for i, deg := range angles {
		wg.Add(1)
		go func(idx int, deg float64) {
			defer wg.Done()

			trial := *cfg
			trial.Flight.LaunchAngleDeg = deg

			s, err := flight.New(&trial, build())
			if err != nil {
				errs[idx] = err
				return
			}
			maxAlt := telemetry.NewMaxAltitude()
			downrange := telemetry.NewDownrange(trial.Physics.PlanetRadius)
			burned := telemetry.NewFuelBurned()
			s.AddMetric(maxAlt)
			s.AddMetric(downrange)
			s.AddMetric(burned)

			st, err := Fly(ctx, s, plan)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = SweepResult{
				AngleDeg:    deg,
				Status:      st.Status,
				Time:        st.Time,
				MaxAltitude: maxAlt.Value(),
				Downrange:   downrange.Value(),
				FuelBurned:  burned.Value(),
			}
		}(i, deg)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
