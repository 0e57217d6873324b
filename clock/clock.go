// Package clock provides the monotonic elapsed-time source for the frame loop.
package clock

import "time"

// Clock measures seconds since Start using the monotonic clock.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time

	// elapsed is the largest value returned so far, so readings never go
	// backward even with a misbehaving source.
	elapsed float64
}

// New creates a clock started now.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a clock reading from now.
func NewWithSource(now func() time.Time) *Clock {
	c := &Clock{now: now}
	c.Start()
	return c
}

// Start resets elapsed time to zero.
func (c *Clock) Start() {
	c.start = c.now()
	c.last = c.start
	c.elapsed = 0
}

// ElapsedSeconds returns seconds since Start. Two calls never decrease.
func (c *Clock) ElapsedSeconds() float64 {
	t := c.now()
	c.last = t
	e := t.Sub(c.start).Seconds()
	if e > c.elapsed {
		c.elapsed = e
	}
	return c.elapsed
}

// Delta returns seconds since the previous ElapsedSeconds or Delta call.
func (c *Clock) Delta() float64 {
	t := c.now()
	d := t.Sub(c.last).Seconds()
	c.last = t
	if d < 0 {
		return 0
	}
	return d
}
