// Package clock measures elapsed and per-frame time for animation loops.
package clock

import (
	"sync"
	"time"
)

// Clock tracks time since it was started and the time between successive Delta calls.
// The first call to ElapsedTime or Delta starts a clock created with autoStart.
type Clock struct {
	mu *sync.Mutex

	now       func() time.Time
	autoStart bool
	running   bool

	startTime time.Time
	oldTime   time.Time
	elapsed   time.Duration
}

// ClockBuilderOption is a functional option for configuring a Clock.
type ClockBuilderOption func(*Clock)

// WithNow replaces the time source, mainly for tests.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithNow(now func() time.Time) ClockBuilderOption {
	return func(c *Clock) {
		c.now = now
	}
}

// WithAutoStart controls whether the first ElapsedTime or Delta call starts the clock (default true).
//
// Parameters:
//   - autoStart: start on first read
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithAutoStart(autoStart bool) ClockBuilderOption {
	return func(c *Clock) {
		c.autoStart = autoStart
	}
}

// NewClock creates a stopped Clock.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Clock: the new clock
func NewClock(options ...ClockBuilderOption) *Clock {
	c := &Clock{
		mu:        &sync.Mutex{},
		now:       time.Now,
		autoStart: true,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Start resets the elapsed time to zero and starts the clock.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked()
}

// Stop freezes the elapsed time.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deltaLocked()
	c.running = false
	c.autoStart = false
}

// Running reports whether the clock is currently running.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// ElapsedTime returns the seconds since the clock started. It also advances the Delta reference point.
//
// Returns:
//   - float32: elapsed seconds
func (c *Clock) ElapsedTime() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deltaLocked()
	return float32(c.elapsed.Seconds())
}

// Delta returns the seconds since the previous Delta or ElapsedTime call.
//
// Returns:
//   - float32: seconds since the last read, 0 while stopped
func (c *Clock) Delta() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float32(c.deltaLocked().Seconds())
}

func (c *Clock) startLocked() {
	c.startTime = c.now()
	c.oldTime = c.startTime
	c.elapsed = 0
	c.running = true
}

func (c *Clock) deltaLocked() time.Duration {
	if c.autoStart && !c.running {
		c.startLocked()
		return 0
	}
	if !c.running {
		return 0
	}
	t := c.now()
	d := t.Sub(c.oldTime)
	c.oldTime = t
	c.elapsed += d
	return d
}
