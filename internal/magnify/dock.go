// Package magnify is the proximity-driven magnification engine behind the
// dock: pointer tracking, the distance-tier model, springs and the frame
// scheduler that advances them.
//
// Nothing in this package is safe for concurrent use. Everything is meant to
// be driven from a single event loop.
package magnify

// Item is one entry of the dock. Index is its position in the row and is
// assigned by the Dock.
type Item struct {
	ID    string
	Name  string
	Glyph string
	Color string
	Index int
}

// Output is the per-frame render state of one item.
type Output struct {
	Item           Item
	Scale          float64
	LiftY          float64
	TooltipOpacity float64
	TooltipOffsetY float64
	TooltipVisible bool
}

type slot struct {
	scale   channel
	lift    channel
	tooltip Tooltip
}

// Dock binds an item row to a tracker and a set of springs registered with a
// shared Scheduler. Input methods only change spring targets; values move
// when the scheduler ticks.
type Dock struct {
	cfg     Config
	prox    Proximity
	sched   *Scheduler
	tracker *Tracker
	items   []Item
	slots   []slot
	closed  bool
}

// NewDock builds a dock over items. The springs it creates are registered
// with sched; call Close to release them.
func NewDock(items []Item, cfg Config, sched *Scheduler) (*Dock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prox, err := NewProximity(cfg.Tiers)
	if err != nil {
		return nil, err
	}
	d := &Dock{
		cfg:     cfg,
		prox:    prox,
		sched:   sched,
		tracker: NewTracker(Geometry{}),
	}
	d.install(items)
	return d, nil
}

// SetItems replaces the whole item set, e.g. on a viewport class switch.
// Every spring of the previous set is released and the pointer is cleared.
func (d *Dock) SetItems(items []Item) {
	if d.closed {
		return
	}
	d.releaseAll()
	d.tracker.Leave()
	d.install(items)
}

func (d *Dock) install(items []Item) {
	d.items = make([]Item, len(items))
	for i, it := range items {
		it.Index = i
		d.items[i] = it
	}
	d.slots = make([]slot, len(items))
	for i := range d.slots {
		d.slots[i] = d.newSlot()
	}
	g := d.tracker.Geometry()
	g.ItemCount = len(items)
	d.tracker.SetGeometry(g)
}

func (d *Dock) newSlot() slot {
	return slot{
		scale:   channel{rest: Resting.Scale, params: d.cfg.Motion, eps: d.cfg.Epsilon},
		lift:    channel{rest: Resting.LiftY, params: d.cfg.Motion, eps: d.cfg.Epsilon},
		tooltip: newTooltip(d.cfg.Tooltip, d.cfg.Epsilon, d.cfg.TooltipOffset),
	}
}

// Configure applies new tuning. Springs keep their kinetic state and are
// re-aimed at the new tier targets.
func (d *Dock) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	prox, err := NewProximity(cfg.Tiers)
	if err != nil {
		return err
	}
	d.cfg, d.prox = cfg, prox
	if d.closed {
		return nil
	}
	for i := range d.slots {
		s := &d.slots[i]
		s.scale.tune(cfg.Motion, cfg.Epsilon)
		s.lift.tune(cfg.Motion, cfg.Epsilon)
		s.tooltip.tune(cfg.Tooltip, cfg.Epsilon, cfg.TooltipOffset)
	}
	d.retarget()
	return nil
}

// Enter marks item i as hovered by an indirect pointer.
func (d *Dock) Enter(i int) {
	if d.closed {
		return
	}
	if d.tracker.Enter(i) {
		d.retarget()
	}
}

// Leave clears the pointer.
func (d *Dock) Leave() {
	if d.closed {
		return
	}
	if d.tracker.Leave() {
		d.retarget()
	}
}

// Touch feeds one direct-pointer sample.
func (d *Dock) Touch(s Sample) {
	if d.closed {
		return
	}
	if d.tracker.Touch(s) {
		d.retarget()
	}
}

// SetGeometry updates the row extent used to locate direct-pointer samples.
// The item count always follows the installed item set.
func (d *Dock) SetGeometry(g Geometry) {
	if d.closed {
		return
	}
	g.ItemCount = len(d.items)
	if d.tracker.SetGeometry(g) {
		d.retarget()
	}
}

func (d *Dock) retarget() {
	active := d.tracker.State().Active
	for i := range d.slots {
		s := &d.slots[i]
		t := d.prox.TargetsFor(active, i)
		s.scale.aim(t.Scale, d.sched)
		s.lift.aim(t.LiftY, d.sched)
		s.tooltip.Aim(d.prox.TooltipVisible(active, i), d.sched)
	}
}

// Pointer returns the current pointer state.
func (d *Dock) Pointer() PointerState { return d.tracker.State() }

// Geometry returns the geometry used for direct-pointer hit testing.
func (d *Dock) Geometry() Geometry { return d.tracker.Geometry() }

// Items returns the installed item set.
func (d *Dock) Items() []Item { return d.items }

// Config returns the active tuning.
func (d *Dock) Config() Config { return d.cfg }

// Outputs returns the current render values of every item.
func (d *Dock) Outputs() []Output {
	out := make([]Output, len(d.items))
	for i := range d.items {
		out[i] = d.Output(i)
	}
	return out
}

// Output returns the current render values of item i.
func (d *Dock) Output(i int) Output {
	s := &d.slots[i]
	return Output{
		Item:           d.items[i],
		Scale:          s.scale.value(),
		LiftY:          s.lift.value(),
		TooltipOpacity: s.tooltip.Opacity(),
		TooltipOffsetY: s.tooltip.OffsetY(),
		TooltipVisible: s.tooltip.Visible(),
	}
}

// Close unregisters every spring from the scheduler. Further input is
// ignored. Close is idempotent.
func (d *Dock) Close() {
	if d.closed {
		return
	}
	d.releaseAll()
	d.closed = true
}

func (d *Dock) releaseAll() {
	for i := range d.slots {
		s := &d.slots[i]
		s.scale.release(d.sched)
		s.lift.release(d.sched)
		s.tooltip.release(d.sched)
	}
}
