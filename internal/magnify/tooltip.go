package magnify

// Tooltip fades and slides an item's label in while the item is active.
// Opacity rests at 0, the offset rests OffsetY pixels below its shown
// position.
type Tooltip struct {
	visible bool
	opacity channel
	offset  channel
}

func newTooltip(p Params, eps Epsilon, hiddenOffset float64) Tooltip {
	return Tooltip{
		opacity: channel{rest: 0, params: p, eps: eps},
		offset:  channel{rest: hiddenOffset, params: p, eps: eps},
	}
}

// Aim points both springs at the shown or hidden position.
func (t *Tooltip) Aim(visible bool, sched *Scheduler) {
	t.visible = visible
	if visible {
		t.opacity.aim(1, sched)
		t.offset.aim(0, sched)
		return
	}
	t.opacity.aim(0, sched)
	t.offset.aim(t.offset.rest, sched)
}

func (t *Tooltip) Visible() bool    { return t.visible }
func (t *Tooltip) Opacity() float64 { return t.opacity.value() }
func (t *Tooltip) OffsetY() float64 { return t.offset.value() }

// tune swaps constants in place. The caller re-aims afterwards so a new
// hidden offset takes effect.
func (t *Tooltip) tune(p Params, eps Epsilon, hiddenOffset float64) {
	t.opacity.tune(p, eps)
	t.offset.tune(p, eps)
	t.offset.rest = hiddenOffset
}

func (t *Tooltip) release(sched *Scheduler) {
	t.opacity.release(sched)
	t.offset.release(sched)
}

// channel is one lazily created spring. Until its target first leaves the
// resting value no Spring exists and nothing is registered.
type channel struct {
	rest   float64
	params Params
	eps    Epsilon
	spring *Spring
}

func (c *channel) aim(target float64, sched *Scheduler) {
	if c.spring == nil {
		if target == c.rest {
			return
		}
		c.spring = NewSpring(c.rest, c.params, c.eps)
		sched.Subscribe(c.spring)
	}
	c.spring.SetTarget(target)
}

func (c *channel) value() float64 {
	if c.spring == nil {
		return c.rest
	}
	return c.spring.Value()
}

func (c *channel) tune(p Params, eps Epsilon) {
	c.params, c.eps = p, eps
	if c.spring != nil {
		c.spring.SetParams(p, eps)
	}
}

func (c *channel) release(sched *Scheduler) {
	if c.spring != nil {
		sched.Unsubscribe(c.spring)
		c.spring = nil
	}
}
