package magnify

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Params are the physical constants of one animated channel.
type Params struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// Valid reports whether p describes a usable spring: stiffness and mass
// strictly positive, damping non-negative, everything finite.
func (p Params) Valid() bool {
	return finite(p.Stiffness) && finite(p.Damping) && finite(p.Mass) &&
		p.Stiffness > 0 && p.Mass > 0 && p.Damping >= 0
}

// angularFrequency and dampingRatio translate stiffness/damping/mass into the
// form harmonica expects: ω = sqrt(k/m), ζ = c / (2·sqrt(k·m)).
func (p Params) angularFrequency() float64 {
	return math.Sqrt(p.Stiffness / p.Mass)
}

func (p Params) dampingRatio() float64 {
	return p.Damping / (2 * math.Sqrt(p.Stiffness*p.Mass))
}

// Epsilon is the convergence threshold used to decide a spring has settled.
type Epsilon struct {
	Position float64
	Velocity float64
}

// State is the kinetic state of a single animated scalar.
type State struct {
	Value    float64
	Velocity float64
	Target   float64
	Params   Params
}

// Settled reports whether s is within eps of its target and nearly at rest.
func (s State) Settled(eps Epsilon) bool {
	return math.Abs(s.Target-s.Value) < eps.Position && math.Abs(s.Velocity) < eps.Velocity
}

// Step advances s by dt seconds. Invalid input (negative or non-finite dt,
// non-finite target, unusable params) or a non-finite result leaves s
// unchanged.
func Step(s State, dt float64) State {
	if !finite(dt) || dt < 0 || !finite(s.Target) || !s.Params.Valid() {
		return s
	}
	if dt == 0 {
		return s
	}
	sp := harmonica.NewSpring(dt, s.Params.angularFrequency(), s.Params.dampingRatio())
	return advance(s, sp)
}

func advance(s State, sp harmonica.Spring) State {
	v, vel := sp.Update(s.Value, s.Velocity, s.Target)
	if !finite(v) || !finite(vel) {
		return s
	}
	s.Value, s.Velocity = v, vel
	return s
}

// Spring is a State owned by a widget and ticked by a Scheduler. The
// harmonica coefficients are cached per (dt, params) since every spring on a
// tick sees the same dt.
type Spring struct {
	state   State
	eps     Epsilon
	settled bool

	coef       harmonica.Spring
	coefDT     float64
	coefParams Params
}

// NewSpring returns a spring resting at value.
func NewSpring(value float64, p Params, eps Epsilon) *Spring {
	return &Spring{
		state:   State{Value: value, Target: value, Params: p},
		eps:     eps,
		settled: true,
	}
}

// SetTarget re-aims the spring. Value and velocity are kept so motion stays
// continuous. A non-finite target is ignored.
func (s *Spring) SetTarget(target float64) {
	if !finite(target) || target == s.state.Target {
		return
	}
	s.state.Target = target
	s.settled = false
}

// SetParams swaps the physical constants without touching the kinetic state.
func (s *Spring) SetParams(p Params, eps Epsilon) {
	if !p.Valid() {
		return
	}
	s.state.Params = p
	s.eps = eps
	if !s.state.Settled(eps) {
		s.settled = false
	}
}

// Step advances the spring by dt and reports whether it moved. Once the
// spring falls inside its epsilon it snaps onto the target and stays settled
// until the next SetTarget.
func (s *Spring) Step(dt float64) bool {
	if s.settled {
		return false
	}
	if !finite(dt) || dt <= 0 || !s.state.Params.Valid() {
		return false
	}
	if dt != s.coefDT || s.state.Params != s.coefParams {
		s.coef = harmonica.NewSpring(dt, s.state.Params.angularFrequency(), s.state.Params.dampingRatio())
		s.coefDT = dt
		s.coefParams = s.state.Params
	}
	s.state = advance(s.state, s.coef)
	if s.state.Settled(s.eps) {
		s.state.Value = s.state.Target
		s.state.Velocity = 0
		s.settled = true
	}
	return true
}

func (s *Spring) Value() float64    { return s.state.Value }
func (s *Spring) Velocity() float64 { return s.state.Velocity }
func (s *Spring) Target() float64   { return s.state.Target }
func (s *Spring) Settled() bool     { return s.settled }
func (s *Spring) State() State      { return s.state }

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
