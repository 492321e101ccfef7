package ui

import (
	"math"

	"github.com/olivier-w/springdock/internal/magnify"
)

const (
	indent       = 2
	headerRows   = 3 // blank, title, blank
	boxInset     = 2 // border + horizontal padding
	baseIconRows = 2
	maxIconCols  = 5
	minIconCols  = 3
	tooltipRows  = 2 // label + gap above the icon
	maxIconRows  = 8
	maxLiftRows  = 16
)

// layout maps the dock onto terminal cells. The dock box sits below the
// header; inside it every item owns a slot of slotW columns.
type layout struct {
	count    int
	iconCols int
	slotW    int
	rows     int
	iconRows int
	liftRows int
	pxPerRow float64
}

func newLayout(cfg magnify.Config, pxPerRow float64, count, width int) layout {
	maxScale, maxLift := 1.0, 0.0
	for _, t := range cfg.Tiers {
		maxScale = math.Max(maxScale, t.Scale)
		maxLift = math.Max(maxLift, -t.LiftY)
	}
	l := layout{count: count, pxPerRow: pxPerRow}
	l.iconRows = clampInt(roundInt(baseIconRows*maxScale), baseIconRows, maxIconRows)
	if pxPerRow >= 1 {
		l.liftRows = clampInt(roundInt(maxLift/pxPerRow), 0, maxLiftRows)
	}
	l.rows = tooltipRows + l.liftRows + l.iconRows

	for cols := maxIconCols; cols >= minIconCols; cols-- {
		l.iconCols = cols
		l.slotW = roundInt(float64(cols)*math.Min(maxScale, magnify.MaxScale)) + 2
		if width <= 0 || indent+l.boxWidth() <= width {
			break
		}
	}
	return l
}

func (l layout) slotLeft() int  { return indent + boxInset }
func (l layout) boxTop() int    { return headerRows }
func (l layout) boxHeight() int { return l.rows + 2 }
func (l layout) boxWidth() int  { return l.count*l.slotW + 2*boxInset }

// geometry is the item row in cell units, as the engine sees it.
func (l layout) geometry() magnify.Geometry {
	return magnify.Geometry{
		Left:      float64(l.slotLeft()),
		Width:     float64(l.count * l.slotW),
		ItemCount: l.count,
	}
}

func (l layout) inBox(x, y int) bool {
	return x >= indent && x < indent+l.boxWidth() &&
		y >= l.boxTop() && y < l.boxTop()+l.boxHeight()
}

// slotAt returns the slot under column x, or NoIndex between the border and
// the first slot.
func (l layout) slotAt(x int) int {
	rel := x - l.slotLeft()
	if rel < 0 || l.slotW <= 0 {
		return magnify.NoIndex
	}
	i := rel / l.slotW
	if i >= l.count {
		return magnify.NoIndex
	}
	return i
}

// rowsFor converts a pixel offset into whole terminal rows.
func (l layout) rowsFor(px float64) int {
	if !(l.pxPerRow >= 1) || math.IsNaN(px) {
		return 0
	}
	return roundInt(px / l.pxPerRow)
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
