package config

import (
	"fmt"
	"strings"
)

// Viewport is the display class the dock is laid out for.
type Viewport string

const (
	Desktop Viewport = "desktop"
	Mobile  Viewport = "mobile"
)

// Viewports returns every viewport class in display order.
func Viewports() []Viewport {
	return []Viewport{Desktop, Mobile}
}

// ParseViewport accepts a viewport name case-insensitively. An empty name
// means desktop.
func ParseViewport(s string) (Viewport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Desktop):
		return Desktop, nil
	case string(Mobile):
		return Mobile, nil
	}
	return "", fmt.Errorf("%w: unknown viewport %q (want desktop or mobile)", ErrInvalid, s)
}

// Next cycles to the other viewport class.
func (v Viewport) Next() Viewport {
	switch v {
	case Desktop, "":
		return Mobile
	default:
		return Desktop
	}
}

// String returns the name of the viewport class.
func (v Viewport) String() string {
	if v == "" {
		return string(Desktop)
	}
	return string(v)
}

// Icon returns a visual indicator for the viewport class.
func (v Viewport) Icon() string {
	switch v {
	case Mobile:
		return "[touch]"
	default:
		return "[hover]"
	}
}
