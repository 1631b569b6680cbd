// Package loop drives per-frame work from the host's display callback.
package loop

import "time"

// Tickable is anything advanced once per host frame.
type Tickable interface {
	Start()
	Stop()
	Tick(dt time.Duration)
}

// Driver owns at most one active Tickable. Opening a new one stops the
// previous registration before it can touch shared state again.
type Driver struct {
	active Tickable
}

func NewDriver() *Driver {
	return &Driver{}
}

// Open stops any prior registration, then starts t.
func (d *Driver) Open(t Tickable) {
	if t == nil {
		return
	}
	d.Close()
	d.active = t
	t.Start()
}

// Close stops and forgets the active registration.
func (d *Driver) Close() {
	if d.active == nil {
		return
	}
	prev := d.active
	d.active = nil
	prev.Stop()
}

// Update ticks the active registration, if any.
func (d *Driver) Update(dt time.Duration) {
	if d.active == nil {
		return
	}
	d.active.Tick(dt)
}

// Active returns the current registration or nil.
func (d *Driver) Active() Tickable {
	return d.active
}

// Clock converts host frame callbacks into elapsed durations.
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock returns a clock reading the wall time. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Delta returns the time since the previous call; the first call returns 0.
func (c *Clock) Delta() time.Duration {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	dt := t.Sub(c.last)
	c.last = t
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset makes the next Delta return 0.
func (c *Clock) Reset() {
	c.last = time.Time{}
}

// Func adapts a plain per-frame function to Tickable.
type Func func(dt time.Duration)

func (f Func) Start() {}

func (f Func) Stop() {}

func (f Func) Tick(dt time.Duration) {
	if f != nil {
		f(dt)
	}
}
