package magnify

// Scheduler owns the set of springs that are advanced on every frame. It
// knows nothing about items; callers subscribe the springs they create and
// must unsubscribe them on teardown.
//
// The host loop calls Tick once per frame and keeps requesting frames only
// while Active reports true.
type Scheduler struct {
	springs []*Spring
	frames  uint64
}

// NewScheduler returns an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Subscribe registers sp for ticking. Subscribing twice is a no-op.
func (s *Scheduler) Subscribe(sp *Spring) {
	if sp == nil || s.index(sp) >= 0 {
		return
	}
	s.springs = append(s.springs, sp)
}

// Unsubscribe removes sp. It is safe to call for springs that were never
// registered or were already removed.
func (s *Scheduler) Unsubscribe(sp *Spring) {
	i := s.index(sp)
	if i < 0 {
		return
	}
	last := len(s.springs) - 1
	s.springs[i] = s.springs[last]
	s.springs[last] = nil
	s.springs = s.springs[:last]
}

// Tick advances every registered, unsettled spring by the same dt and
// returns how many springs were stepped.
func (s *Scheduler) Tick(dt float64) int {
	if len(s.springs) == 0 {
		return 0
	}
	s.frames++
	n := 0
	for _, sp := range s.springs {
		if sp.Step(dt) {
			n++
		}
	}
	return n
}

// Active reports whether any registered spring still has work to do.
func (s *Scheduler) Active() bool {
	for _, sp := range s.springs {
		if !sp.Settled() {
			return true
		}
	}
	return false
}

// Len returns the number of registered springs.
func (s *Scheduler) Len() int { return len(s.springs) }

// Frames counts ticks that ran with at least one registered spring.
func (s *Scheduler) Frames() uint64 { return s.frames }

func (s *Scheduler) index(sp *Spring) int {
	for i, r := range s.springs {
		if r == sp {
			return i
		}
	}
	return -1
}
