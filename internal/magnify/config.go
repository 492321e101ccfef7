package magnify

import "fmt"

// Config holds every tunable of the magnification engine.
type Config struct {
	Tiers []Tier

	// Motion drives scale and lift, Tooltip drives label opacity and offset.
	Motion  Params
	Tooltip Params

	// TooltipOffset is how far below its shown position a hidden label rests.
	TooltipOffset float64

	Epsilon Epsilon
}

// DefaultConfig returns the stock dock tuning.
func DefaultConfig() Config {
	return Config{
		Tiers:         DefaultTiers(),
		Motion:        Params{Stiffness: 400, Damping: 25, Mass: 0.8},
		Tooltip:       Params{Stiffness: 500, Damping: 30, Mass: 0.5},
		TooltipOffset: 5,
		Epsilon:       Epsilon{Position: 1e-3, Velocity: 1e-3},
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validateTiers(c.Tiers); err != nil {
		return err
	}
	if !c.Motion.Valid() {
		return fmt.Errorf("%w: motion spring %+v", ErrInvalidConfig, c.Motion)
	}
	if !c.Tooltip.Valid() {
		return fmt.Errorf("%w: tooltip spring %+v", ErrInvalidConfig, c.Tooltip)
	}
	if !finite(c.TooltipOffset) {
		return fmt.Errorf("%w: tooltip offset %v", ErrInvalidConfig, c.TooltipOffset)
	}
	if !finite(c.Epsilon.Position) || !finite(c.Epsilon.Velocity) ||
		c.Epsilon.Position <= 0 || c.Epsilon.Velocity <= 0 {
		return fmt.Errorf("%w: epsilon %+v", ErrInvalidConfig, c.Epsilon)
	}
	return nil
}
