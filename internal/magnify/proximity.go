package magnify

import (
	"errors"
	"fmt"
	"math"
)

// Limits on tier targets.
const (
	MaxScale = 4.0
	MaxLift  = 256.0
)

// Tier is the visual response for items up to Distance slots from the
// active one.
type Tier struct {
	Distance int
	Scale    float64
	LiftY    float64
}

// Targets is what an item should animate toward.
type Targets struct {
	Scale float64
	LiftY float64
}

// Resting is the response for items outside every tier.
var Resting = Targets{Scale: 1, LiftY: 0}

// DefaultTiers is the classic dock falloff.
func DefaultTiers() []Tier {
	return []Tier{
		{Distance: 0, Scale: 1.55, LiftY: -24},
		{Distance: 1, Scale: 1.30, LiftY: -12},
		{Distance: 2, Scale: 1.10, LiftY: -6},
		{Distance: 3, Scale: 1.00, LiftY: -2},
	}
}

// Proximity maps (active, item) pairs to targets. It holds no state besides
// its tier table.
type Proximity struct {
	tiers []Tier
}

// NewProximity validates tiers and returns the model. Tiers must be sorted
// by strictly increasing, non-negative distance.
func NewProximity(tiers []Tier) (Proximity, error) {
	if err := validateTiers(tiers); err != nil {
		return Proximity{}, err
	}
	return Proximity{tiers: append([]Tier(nil), tiers...)}, nil
}

// TargetsFor returns the tier targets for item given the active index. A
// tier covers every distance greater than the previous tier's and up to its
// own; distances past the last tier, and NoIndex, rest.
func (p Proximity) TargetsFor(active, item int) Targets {
	if active < 0 {
		return Resting
	}
	d := item - active
	if d < 0 {
		d = -d
	}
	for _, t := range p.tiers {
		if d <= t.Distance {
			return Targets{Scale: t.Scale, LiftY: t.LiftY}
		}
	}
	return Resting
}

// TooltipVisible reports whether item's tooltip should show.
func (p Proximity) TooltipVisible(active, item int) bool {
	return active >= 0 && item == active
}

func validateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: no distance tiers", ErrInvalidConfig)
	}
	prev := -1
	for i, t := range tiers {
		if t.Distance <= prev {
			return fmt.Errorf("%w: tier %d distance %d not increasing", ErrInvalidConfig, i, t.Distance)
		}
		if !finite(t.Scale) || t.Scale <= 0 || t.Scale > MaxScale {
			return fmt.Errorf("%w: tier %d scale %v", ErrInvalidConfig, i, t.Scale)
		}
		if !finite(t.LiftY) || math.Abs(t.LiftY) > MaxLift {
			return fmt.Errorf("%w: tier %d lift %v", ErrInvalidConfig, i, t.LiftY)
		}
		prev = t.Distance
	}
	return nil
}

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid magnify config")
