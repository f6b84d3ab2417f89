package sim

import (
	"math"
	"sort"
)

// TimerID identifies a deferred action.
type TimerID uint64

type timer struct {
	id    TimerID
	due   int // Tick at which the action runs
	owner EntityID
	fn    func()
	dead  bool // Cancelled while its batch was running
}

// Scheduler runs deferred actions on the simulation clock. Delays are
// rounded up to whole ticks, so an action never runs before its delay has
// elapsed in simulated time.
type Scheduler struct {
	dt     float64
	tick   int
	nextID TimerID
	timers []*timer
	firing []*timer // Batch being run by Advance
}

// NewScheduler creates a scheduler for a fixed step of dt seconds.
func NewScheduler(dt float64) *Scheduler {
	return &Scheduler{dt: dt}
}

// Tick returns the number of ticks advanced so far.
func (s *Scheduler) Tick() int {
	return s.tick
}

// Now returns the simulation time in seconds.
func (s *Scheduler) Now() float64 {
	return float64(s.tick) * s.dt
}

// Ticks converts a delay in seconds to a whole number of ticks, at least 1.
func (s *Scheduler) Ticks(delay float64) int {
	n := int(math.Ceil(delay/s.dt - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// After schedules fn to run delay seconds from now on behalf of owner.
func (s *Scheduler) After(delay float64, owner EntityID, fn func()) TimerID {
	s.nextID++
	t := &timer{id: s.nextID, due: s.tick + s.Ticks(delay), owner: owner, fn: fn}
	s.timers = append(s.timers, t)
	return t.id
}

// Cancel removes a pending action. It reports whether one was removed.
func (s *Scheduler) Cancel(id TimerID) bool {
	for _, t := range s.firing {
		if t.id == id && !t.dead {
			t.dead = true
			return true
		}
	}
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// CancelOwner removes every pending action owned by an entity and returns
// how many were removed.
func (s *Scheduler) CancelOwner(owner EntityID) int {
	removed := 0
	for _, t := range s.firing {
		if t.owner == owner && !t.dead {
			t.dead = true
			removed++
		}
	}
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.owner == owner {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
	return removed
}

// Pending returns how many actions an entity still has scheduled.
func (s *Scheduler) Pending(owner EntityID) int {
	n := 0
	for _, t := range s.timers {
		if t.owner == owner {
			n++
		}
	}
	return n
}

// Len returns the number of pending actions.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Advance moves the clock one tick forward and runs every action that is
// due, in scheduling order. Actions scheduled while running land on a later
// tick.
func (s *Scheduler) Advance() {
	s.tick++

	var due []*timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.due <= s.tick {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	s.timers = kept
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	s.firing = due
	for _, t := range due {
		if !t.dead {
			t.dead = true
			t.fn()
		}
	}
	s.firing = nil
}

// Reset drops every pending action and rewinds the clock.
func (s *Scheduler) Reset() {
	s.tick = 0
	s.nextID = 0
	s.timers = nil
	s.firing = nil
}
