// Package stop provides the busy-polled stop signal shared between a
// timed run's controller and its worker.
//
// The signal is a single atomic.Bool. Within one run it only ever moves
// from false to true; the harness resets it before starting the next
// run. Workers poll Stopped in their hot loops, so the check must stay
// a single atomic load with no channel or context machinery behind it.
package stop

import "sync/atomic"

// Signal is a one-way stop flag for a single timed run.
type Signal struct {
	stopped atomic.Bool
}

// New creates a Signal in the running (not stopped) state.
func New() *Signal {
	return &Signal{}
}

// Stopped reports whether the run has been told to stop.
// Single atomic load, safe to call millions of times per second.
func (s *Signal) Stopped() bool {
	return s.stopped.Load()
}

// Stop tells the worker to finish. Safe to call more than once.
func (s *Signal) Stop() {
	s.stopped.Store(true)
}

// Reset clears the flag for the next run. Must not be called while a
// worker is still polling the signal.
func (s *Signal) Reset() {
	s.stopped.Store(false)
}
