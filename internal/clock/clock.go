// Package clock provides the engine's single monotonic timestamp source.
//
// Every emitted event and every order's arrival sequence number is stamped
// from the same counter, so the counter's issuance order is the canonical
// serialization order of engine events (spec.md §4.1).
package clock

import "sync/atomic"

// Clock issues strictly-increasing timestamps, safe for concurrent use.
type Clock interface {
	// Now returns a value strictly greater than any value previously
	// returned by this Clock.
	Now() int64
}

// AtomicClock is a Clock backed by a single atomic counter.
type AtomicClock struct {
	counter atomic.Int64
}

// NewAtomicClock creates a Clock whose first issued value is 1.
func NewAtomicClock() *AtomicClock {
	return &AtomicClock{}
}

// Now returns the next value in the strictly-increasing sequence.
func (c *AtomicClock) Now() int64 {
	return c.counter.Add(1)
}

var _ Clock = (*AtomicClock)(nil)
