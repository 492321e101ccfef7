package magnify

import "math"

// NoIndex marks the absence of an active item.
const NoIndex = -1

// InputMode is the kind of pointer currently driving the dock.
type InputMode int

const (
	ModeNone     InputMode = iota
	ModeIndirect           // mouse-like hover, explicit enter/leave per item
	ModeDirect             // touch-like, sampled coordinates
)

func (m InputMode) String() string {
	switch m {
	case ModeIndirect:
		return "indirect"
	case ModeDirect:
		return "direct"
	default:
		return "none"
	}
}

// Phase is the stage of a direct-pointer gesture.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

// Sample is one direct-pointer reading.
type Sample struct {
	X, Y  float64
	Phase Phase
}

// Geometry is the horizontal extent of the item row. Items share the width
// evenly.
type Geometry struct {
	Left      float64
	Width     float64
	ItemCount int
}

func (g Geometry) usable() bool {
	return g.ItemCount > 0 && g.Width > 0 && finite(g.Width) && finite(g.Left)
}

// PointerState is the tracker's view of the pointer.
type PointerState struct {
	Active int
	Mode   InputMode
}

// Locate maps a coordinate along the row to an item index, or NoIndex when
// the coordinate is outside the row or the geometry is degenerate.
func Locate(mode InputMode, x float64, g Geometry) int {
	if mode == ModeNone || !g.usable() || !finite(x) {
		return NoIndex
	}
	rel := x - g.Left
	if rel < 0 || rel > g.Width {
		return NoIndex
	}
	pitch := g.Width / float64(g.ItemCount)
	i := int(math.Floor(rel / pitch))
	if i >= g.ItemCount {
		i = g.ItemCount - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Tracker turns input events into a PointerState. Every input method
// reports whether the active index changed.
type Tracker struct {
	state PointerState
	geom  Geometry
}

// NewTracker returns a tracker with no active pointer.
func NewTracker(g Geometry) *Tracker {
	return &Tracker{
		state: PointerState{Active: NoIndex, Mode: ModeNone},
		geom:  g,
	}
}

func (t *Tracker) State() PointerState { return t.state }
func (t *Tracker) Geometry() Geometry  { return t.geom }

// Enter marks item i as hovered by an indirect pointer.
func (t *Tracker) Enter(i int) bool {
	if i < 0 || i >= t.geom.ItemCount {
		return t.set(PointerState{Active: NoIndex, Mode: ModeIndirect})
	}
	return t.set(PointerState{Active: i, Mode: ModeIndirect})
}

// Leave clears the pointer, whatever its mode.
func (t *Tracker) Leave() bool {
	return t.set(PointerState{Active: NoIndex, Mode: ModeNone})
}

// Touch handles one direct-pointer sample. Start and move samples relocate
// the pointer, an end sample releases it.
func (t *Tracker) Touch(s Sample) bool {
	if s.Phase == PhaseEnd {
		return t.Leave()
	}
	return t.set(PointerState{Active: Locate(ModeDirect, s.X, t.geom), Mode: ModeDirect})
}

// SetGeometry replaces the row geometry. An active index that no longer
// exists is cleared.
func (t *Tracker) SetGeometry(g Geometry) bool {
	t.geom = g
	if t.state.Active != NoIndex && (!g.usable() || t.state.Active >= g.ItemCount) {
		return t.set(PointerState{Active: NoIndex, Mode: t.state.Mode})
	}
	return false
}

func (t *Tracker) set(s PointerState) bool {
	changed := s.Active != t.state.Active
	t.state = s
	return changed
}
