// Package timer implements the per-output wallpaper rotation timer.
//
// A Timer is shared between the loop that checks it and the surface
// that draws when it fires. Only Check sets the expired flag and only
// Consume clears it.
package timer

import (
	"sync"
	"time"

	"deedles.dev/wlpaperd/output"
)

type Timer struct {
	m       sync.Mutex
	output  *output.Output
	due     time.Time
	expired bool
}

// New returns a timer for out whose first interval starts at now.
func New(out *output.Output, now time.Time) *Timer {
	t := Timer{output: out}
	t.reset(now)
	return &t
}

func (t *Timer) reset(now time.Time) {
	t.due = time.Time{}
	if t.output.Duration > 0 {
		t.due = now.Add(t.output.Duration)
	}
}

// Interval returns the rotation interval, or 0 if the output doesn't
// rotate.
func (t *Timer) Interval() time.Duration {
	t.m.Lock()
	defer t.m.Unlock()

	return t.output.Duration
}

// Due returns the time at which the timer will next expire. It returns
// false if the timer never expires.
func (t *Timer) Due() (time.Time, bool) {
	t.m.Lock()
	defer t.m.Unlock()

	return t.due, !t.due.IsZero()
}

// Check marks the timer as expired if its interval has elapsed by
// now, in which case the next interval starts immediately. It returns
// the expired flag.
func (t *Timer) Check(now time.Time) bool {
	t.m.Lock()
	defer t.m.Unlock()

	if !t.due.IsZero() && !now.Before(t.due) {
		t.expired = true
		t.reset(now)
	}
	return t.expired
}

// Expire marks the timer as expired regardless of its interval.
func (t *Timer) Expire() {
	t.m.Lock()
	defer t.m.Unlock()

	t.expired = true
}

// Expired reports whether the timer has expired without the
// expiration having been consumed.
func (t *Timer) Expired() bool {
	t.m.Lock()
	defer t.m.Unlock()

	return t.expired
}

// Consume decides whether a redraw should happen. It returns true, and
// clears the expired flag, if ready is true and either force is true
// or the timer has expired. Otherwise it changes nothing.
func (t *Timer) Consume(force, ready bool) bool {
	t.m.Lock()
	defer t.m.Unlock()

	if !(force || t.expired) || !ready {
		return false
	}
	t.expired = false
	return true
}

// Schedule restarts the current interval at now.
func (t *Timer) Schedule(now time.Time) {
	t.m.Lock()
	defer t.m.Unlock()

	t.reset(now)
}

// Update replaces the output whose interval the timer follows and
// restarts the interval at now.
func (t *Timer) Update(out *output.Output, now time.Time) {
	t.m.Lock()
	defer t.m.Unlock()

	t.output = out
	t.reset(now)
}
