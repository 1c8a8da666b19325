package engine

import (
	"time"
)

// DefaultFrameInterval is the minimum spacing between accepted frames (~60 Hz)
const DefaultFrameInterval = 16 * time.Millisecond

// FrameHandle identifies a pending frame request
type FrameHandle uint64

// FrameClock is the host's "call me before the next repaint" primitive
// Request arms exactly one callback; Cancel drops it if it has not run yet.
// Both are called from the engine loop only.
type FrameClock interface {
	Request(fn func(now time.Time)) FrameHandle
	Cancel(h FrameHandle)
}

// TimerClock emulates a display-synced frame callback with timers
//
// Each request is delayed so callbacks average one per interval:
// delay = max(0, interval - (now - last)), last = now + delay.
// Callbacks are delivered through post so they run on the engine loop.
type TimerClock struct {
	post     func(func())
	time     TimeProvider
	interval time.Duration

	last    time.Time
	seq     FrameHandle
	pending map[FrameHandle]*time.Timer
}

// NewTimerClock creates a timer-backed frame clock delivering callbacks via post
func NewTimerClock(post func(func()), tp TimeProvider, interval time.Duration) *TimerClock {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TimerClock{
		post:     post,
		time:     tp,
		interval: interval,
		pending:  make(map[FrameHandle]*time.Timer),
	}
}

// Request implements FrameClock
func (c *TimerClock) Request(fn func(now time.Time)) FrameHandle {
	now := c.time.Now()
	delay := c.interval - now.Sub(c.last)
	if delay < 0 {
		delay = 0
	}
	c.last = now.Add(delay)
	target := c.last

	c.seq++
	h := c.seq
	c.pending[h] = time.AfterFunc(delay, func() {
		c.post(func() {
			// A cancel may land between the timer firing and this callback running
			if _, ok := c.pending[h]; !ok {
				return
			}
			delete(c.pending, h)
			fn(target)
		})
	})
	return h
}

// Cancel implements FrameClock
func (c *TimerClock) Cancel(h FrameHandle) {
	if t, ok := c.pending[h]; ok {
		t.Stop()
		delete(c.pending, h)
	}
}

// Pending returns the number of armed requests
func (c *TimerClock) Pending() int {
	return len(c.pending)
}

// ManualClock is a FrameClock driven explicitly by Fire, for tests and replays
type ManualClock struct {
	seq    FrameHandle
	active FrameHandle
	fn     func(time.Time)
}

// NewManualClock creates an idle manual clock
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Request implements FrameClock, replacing any armed callback
func (c *ManualClock) Request(fn func(now time.Time)) FrameHandle {
	c.seq++
	c.active = c.seq
	c.fn = fn
	return c.seq
}

// Cancel implements FrameClock
func (c *ManualClock) Cancel(h FrameHandle) {
	if h == c.active {
		c.fn = nil
		c.active = 0
	}
}

// Pending reports whether a callback is armed
func (c *ManualClock) Pending() bool {
	return c.fn != nil
}

// Fire runs the armed callback with now, returns false if none was armed
func (c *ManualClock) Fire(now time.Time) bool {
	fn := c.fn
	if fn == nil {
		return false
	}
	c.fn = nil
	c.active = 0
	fn(now)
	return true
}
