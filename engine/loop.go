package engine

import (
	"context"
)

// Loop serialises every engine callback onto one goroutine
// Frame callbacks and input events are posted here; nothing else touches engine state
type Loop struct {
	queue chan func()
}

// NewLoop creates a loop with the given queue capacity
func NewLoop(capacity int) *Loop {
	if capacity <= 0 {
		capacity = 256
	}
	return &Loop{queue: make(chan func(), capacity)}
}

// Post queues fn for execution on the loop goroutine
// Safe for concurrent use; blocks while the queue is full
func (l *Loop) Post(fn func()) {
	l.queue <- fn
}

// TryPost queues fn without blocking, returns false when the queue is full
func (l *Loop) TryPost(fn func()) bool {
	select {
	case l.queue <- fn:
		return true
	default:
		return false
	}
}

// Run executes posted callbacks until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Drain runs callbacks already queued without waiting for more
// Returns the number of callbacks executed
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			fn()
			n++
		default:
			return n
		}
	}
}

// DiscardUntil drops queued callbacks without running them until done is closed
// Producers blocked in Post are released; returns the number dropped
func (l *Loop) DiscardUntil(done <-chan struct{}) int {
	n := 0
	for {
		select {
		case <-done:
			return n
		case <-l.queue:
			n++
		}
	}
}
