package flight

import "math"

// kinState is the integrator's packed state:
// x, y, vx, vy, rot, angular velocity.
type kinState [6]float64

type derivFn func(x kinState, t float64) kinState

// rk4 is a classic fourth-order Runge-Kutta step over the packed state.
type rk4 struct{}

func (rk4) step(f derivFn, x kinState, t, dt float64) kinState {
	k1 := f(x, t)
	k2 := f(shift(x, k1, dt*0.5), t+dt*0.5)
	k3 := f(shift(x, k2, dt*0.5), t+dt*0.5)
	k4 := f(shift(x, k3, dt), t+dt)

	dt6 := dt / 6.0
	var out kinState
	for i := range x {
		out[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func shift(x, k kinState, h float64) kinState {
	var out kinState
	for i := range x {
		out[i] = x[i] + h*k[i]
	}
	return out
}

func (x kinState) valid() bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
