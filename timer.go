package stun

import "time"

// Clock is the time source the rate limiters and the join barrier schedule
// against. Implementations are not required to be safe for concurrent use.
type Clock interface {
	// Now returns the elapsed time since the clock started.
	Now() time.Duration
	// AfterFunc schedules fn to run once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means it already fired or was stopped.
	Stop() bool
}

// Timeline is a cooperative, single-threaded Clock. Time only moves when
// Advance is called, normally once per frame from Scene.Step, so callbacks
// never run concurrently with each other or with the caller.
type Timeline struct {
	now     time.Duration
	seq     uint64
	pending []*timelineTimer // sorted by (due, seq)
}

type timelineTimer struct {
	tl      *Timeline
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewTimeline returns a timeline starting at zero.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Now returns the current timeline position.
func (tl *Timeline) Now() time.Duration {
	return tl.now
}

// AfterFunc schedules fn to run once the timeline has advanced by d.
// Negative durations are treated as zero. The callback never runs inside
// AfterFunc itself, even for a zero delay.
func (tl *Timeline) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	tl.seq++
	t := &timelineTimer{tl: tl, due: tl.now + d, seq: tl.seq, fn: fn}
	tl.insert(t)
	return t
}

// Pending returns the number of scheduled timers that have not fired.
func (tl *Timeline) Pending() int {
	return len(tl.pending)
}

// Advance moves the timeline forward by dt and runs every timer whose due
// time is reached, in due-time order. Timers scheduled by a firing callback
// also run in this call if they fall due before the new position. Negative
// dt is ignored.
func (tl *Timeline) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := tl.now + dt
	for len(tl.pending) > 0 && tl.pending[0].due <= target {
		t := tl.pending[0]
		copy(tl.pending, tl.pending[1:])
		tl.pending[len(tl.pending)-1] = nil
		tl.pending = tl.pending[:len(tl.pending)-1]

		if t.due > tl.now {
			tl.now = t.due
		}
		t.fired = true
		t.fn()
	}
	tl.now = target
}

// insert places t in (due, seq) order. Equal due times keep scheduling order.
func (tl *Timeline) insert(t *timelineTimer) {
	i := len(tl.pending)
	for i > 0 && tl.pending[i-1].due > t.due {
		i--
	}
	tl.pending = append(tl.pending, nil)
	copy(tl.pending[i+1:], tl.pending[i:])
	tl.pending[i] = t
}

func (tl *Timeline) remove(t *timelineTimer) {
	for i, p := range tl.pending {
		if p == t {
			copy(tl.pending[i:], tl.pending[i+1:])
			tl.pending[len(tl.pending)-1] = nil
			tl.pending = tl.pending[:len(tl.pending)-1]
			return
		}
	}
}

// Stop removes the timer from its timeline.
func (t *timelineTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.tl.remove(t)
	return true
}
