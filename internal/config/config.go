package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/olivier-w/springdock/internal/magnify"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where springdock looks for its configuration when no path
// is given.
const DefaultPath = "springdock.toml"

// Config represents the springdock.toml configuration file
type Config struct {
	FPS      int           `toml:"fps"`
	PxPerRow float64       `toml:"px_per_row"`
	Viewport Viewport      `toml:"viewport"`
	Epsilon  EpsilonConfig `toml:"epsilon"`
	Motion   SpringConfig  `toml:"motion"`
	Tooltip  TooltipConfig `toml:"tooltip"`
	Tiers    []TierConfig  `toml:"tiers"`
	Items    ItemSets      `toml:"items"`
}

// EpsilonConfig holds the thresholds below which a spring counts as settled.
type EpsilonConfig struct {
	Position float64 `toml:"position"`
	Velocity float64 `toml:"velocity"`
}

// SpringConfig holds the constants of one animated channel.
type SpringConfig struct {
	Stiffness float64 `toml:"stiffness"`
	Damping   float64 `toml:"damping"`
	Mass      float64 `toml:"mass"`
}

// TooltipConfig holds the tooltip spring constants and its hidden offset.
type TooltipConfig struct {
	Stiffness float64 `toml:"stiffness"`
	Damping   float64 `toml:"damping"`
	Mass      float64 `toml:"mass"`
	// Pixels below its shown position a hidden label rests at
	Offset float64 `toml:"offset"`
}

// TierConfig is one row of the distance tier table.
type TierConfig struct {
	Distance int     `toml:"distance"`
	Scale    float64 `toml:"scale"`
	LiftY    float64 `toml:"lift_y"`
}

// ItemSets holds one item row per viewport class.
type ItemSets struct {
	Desktop []ItemConfig `toml:"desktop"`
	Mobile  []ItemConfig `toml:"mobile"`
}

// ItemConfig describes one dock item.
type ItemConfig struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Glyph string `toml:"glyph"`
	Color string `toml:"color"`
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Default returns the stock configuration.
func Default() Config {
	m := magnify.DefaultConfig()
	tiers := make([]TierConfig, len(m.Tiers))
	for i, t := range m.Tiers {
		tiers[i] = TierConfig{Distance: t.Distance, Scale: t.Scale, LiftY: t.LiftY}
	}
	return Config{
		FPS:      60,
		PxPerRow: 6,
		Viewport: Desktop,
		Epsilon:  EpsilonConfig{Position: m.Epsilon.Position, Velocity: m.Epsilon.Velocity},
		Motion:   SpringConfig{Stiffness: m.Motion.Stiffness, Damping: m.Motion.Damping, Mass: m.Motion.Mass},
		Tooltip: TooltipConfig{
			Stiffness: m.Tooltip.Stiffness,
			Damping:   m.Tooltip.Damping,
			Mass:      m.Tooltip.Mass,
			Offset:    m.TooltipOffset,
		},
		Tiers: tiers,
		Items: ItemSets{
			Desktop: defaultDesktopItems(),
			Mobile:  defaultDesktopItems()[:4],
		},
	}
}

func defaultDesktopItems() []ItemConfig {
	return []ItemConfig{
		{ID: "finder", Name: "Finder", Glyph: "▣", Color: "#60A5FA"},
		{ID: "safari", Name: "Safari", Glyph: "◎", Color: "#93C5FD"},
		{ID: "mail", Name: "Mail", Glyph: "✉", Color: "#A5B4FC"},
		{ID: "photos", Name: "Photos", Glyph: "❀", Color: "#FACC15"},
		{ID: "music", Name: "Music", Glyph: "♫", Color: "#F87171"},
		{ID: "calendar", Name: "Calendar", Glyph: "▦", Color: "#FCA5A5"},
		{ID: "notes", Name: "Notes", Glyph: "✎", Color: "#FDE047"},
		{ID: "settings", Name: "Settings", Glyph: "⚙", Color: "#9CA3AF"},
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
// Keys absent from the file keep their default values; a tiers or item list
// present in the file replaces the default list entirely.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Tiers = nil
	cfg.Items = ItemSets{}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return cfg, err
	}

	def := Default()
	if cfg.Tiers == nil {
		cfg.Tiers = def.Tiers
	}
	if cfg.Items.Desktop == nil {
		cfg.Items.Desktop = def.Items.Desktop
	}
	if cfg.Items.Mobile == nil {
		cfg.Items.Mobile = def.Items.Mobile
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the parts of the configuration the engine does not, then
// defers to magnify.Config.Validate for the rest.
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: fps %d outside 1..240", ErrInvalid, c.FPS)
	}
	if math.IsNaN(c.PxPerRow) || c.PxPerRow < 1 || c.PxPerRow > 64 {
		return fmt.Errorf("%w: px_per_row %v outside 1..64", ErrInvalid, c.PxPerRow)
	}
	if _, err := ParseViewport(string(c.Viewport)); err != nil {
		return err
	}
	for _, vp := range Viewports() {
		items := c.ItemsFor(vp)
		if len(items) == 0 {
			return fmt.Errorf("%w: no %s items", ErrInvalid, vp)
		}
		seen := make(map[string]bool, len(items))
		for i, it := range items {
			if it.ID == "" {
				return fmt.Errorf("%w: %s item %d has no id", ErrInvalid, vp, i)
			}
			if seen[it.ID] {
				return fmt.Errorf("%w: duplicate %s item id %q", ErrInvalid, vp, it.ID)
			}
			seen[it.ID] = true
		}
	}
	if err := c.Magnify().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Magnify converts the file representation into engine tuning.
func (c Config) Magnify() magnify.Config {
	tiers := make([]magnify.Tier, len(c.Tiers))
	for i, t := range c.Tiers {
		tiers[i] = magnify.Tier{Distance: t.Distance, Scale: t.Scale, LiftY: t.LiftY}
	}
	return magnify.Config{
		Tiers:         tiers,
		Motion:        magnify.Params{Stiffness: c.Motion.Stiffness, Damping: c.Motion.Damping, Mass: c.Motion.Mass},
		Tooltip:       magnify.Params{Stiffness: c.Tooltip.Stiffness, Damping: c.Tooltip.Damping, Mass: c.Tooltip.Mass},
		TooltipOffset: c.Tooltip.Offset,
		Epsilon:       magnify.Epsilon{Position: c.Epsilon.Position, Velocity: c.Epsilon.Velocity},
	}
}

// ItemsFor returns the dock items of a viewport class.
func (c Config) ItemsFor(vp Viewport) []magnify.Item {
	src := c.Items.Desktop
	if vp == Mobile {
		src = c.Items.Mobile
	}
	items := make([]magnify.Item, len(src))
	for i, it := range src {
		name := it.Name
		if name == "" {
			name = it.ID
		}
		items[i] = magnify.Item{ID: it.ID, Name: name, Glyph: it.Glyph, Color: it.Color, Index: i}
	}
	return items
}

// Save writes c to path as TOML.
func Save(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
