package flight

import "errors"

// Domain errors for the flight loop.
var (
	// ErrUnstable indicates the integrator produced NaN or Inf.
	ErrUnstable = errors.New("flight: state diverged (NaN or Inf detected)")

	// ErrInterrupted indicates the run was canceled by its context.
	ErrInterrupted = errors.New("flight: run interrupted")

	// ErrNoCraft indicates a simulation with nothing left to fly.
	ErrNoCraft = errors.New("flight: no craft")
)

// FlightError wraps an error with the mission time it happened at.
type FlightError struct {
	Time    float64
	Wrapped error
}

func (e *FlightError) Error() string {
	return e.Wrapped.Error()
}

func (e *FlightError) Unwrap() error {
	return e.Wrapped
}
