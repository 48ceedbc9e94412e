// Package debounce collapses bursts of triggers into a single action.
//
// The debouncer owns no goroutine or timer. The caller schedules a timer
// when Trigger asks for one (tea.Tick in the UI) and calls Fire when it
// expires; Fire either runs the action or asks for another timer covering
// the remaining time since the last trigger.
package debounce

import "time"

// DefaultDelay is the quiet period used for filtering
const DefaultDelay = 300 * time.Millisecond

// Debouncer tracks one pending action
type Debouncer struct {
	delay    time.Duration
	now      func() time.Time
	deadline time.Time
	pending  bool
	armed    bool
}

// Option configures a Debouncer
type Option func(*Debouncer)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(d *Debouncer) {
		d.now = now
	}
}

// New creates a debouncer with the given quiet period
func New(delay time.Duration, opts ...Option) *Debouncer {
	d := &Debouncer{delay: delay, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger records activity and restarts the quiet period. When schedule is
// true the caller must arrange for Fire to be called after delay; otherwise
// a timer is already outstanding.
func (d *Debouncer) Trigger() (delay time.Duration, schedule bool) {
	d.deadline = d.now().Add(d.delay)
	d.pending = true
	if d.armed {
		return 0, false
	}
	d.armed = true
	return d.delay, true
}

// Fire is called when the outstanding timer expires. It reports whether the
// action should run now. A positive delay means the quiet period was
// extended and the caller must schedule Fire again.
func (d *Debouncer) Fire() (ready bool, delay time.Duration) {
	if !d.armed {
		return false, 0
	}
	if !d.pending {
		d.armed = false
		return false, 0
	}
	if remaining := d.deadline.Sub(d.now()); remaining > 0 {
		return false, remaining
	}
	d.armed = false
	d.pending = false
	return true, 0
}

// Pending reports whether an action is waiting
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Stop drops the pending action. An outstanding timer fires as a no-op.
func (d *Debouncer) Stop() {
	d.pending = false
}
