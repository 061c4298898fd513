// Package timesource wraps the timestamp-reading primitives being
// benchmarked behind a single Source type.
//
// Five methods are selectable: the serializing rdtscp read, the plain
// rdtsc read, an lfence-serialized rdtsc, a CAS-memoized rdtsc, and
// clock_gettime in monotonic and non-monotonic flavors. Exactly one
// method is active per Source and never changes mid-run.
package timesource

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// Kind selects one of the sampling methods.
type Kind int

const (
	// RDTSCP is the serializing register read. The instruction also
	// returns the processor id in a side register; the sequence must
	// capture it even though callers discard it.
	RDTSCP Kind = iota
	// RDTSC is the plain, non-serializing register read.
	RDTSC
	// RDTSCLfence issues a load fence before the register read so
	// out-of-order execution cannot hide the read's cost.
	RDTSCLfence
	// RDTSCCAS memoizes the last read behind a compare-and-swap lock,
	// trading freshness for fewer hardware reads under contention.
	RDTSCCAS
	// Monotonic reads CLOCK_MONOTONIC via clock_gettime.
	Monotonic
	// NonMonotonic reads the wall clock, which may step backwards.
	NonMonotonic
)

// String returns the CLI token for the kind, which doubles as the
// variant name printed in status lines.
func (k Kind) String() string {
	switch k {
	case RDTSCP:
		return "rdtscp"
	case RDTSC:
		return "rdtsc"
	case RDTSCLfence:
		return "rdtsc_lfence"
	case RDTSCCAS:
		return "rdtsc_cas"
	case Monotonic:
		return "clock_gettime"
	case NonMonotonic:
		return "clock_gettime_non_monotonic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) registerBased() bool {
	return k == RDTSCP || k == RDTSC || k == RDTSCLfence || k == RDTSCCAS
}

// Source samples one timestamp method. A suppressed Source returns 0
// from every Sample call without touching the hardware or the kernel,
// which is how comparison runs measure the uninstrumented baseline.
type Source struct {
	kind Kind

	// suppressed is only toggled between runs; the worker goroutine
	// spawned afterwards observes the write via goroutine creation.
	suppressed bool

	// memo holds the last published timestamp for the CAS-memoized
	// kind. Bit 0 is the update-in-progress lock, so published values
	// always have it cleared.
	memo atomic.Uint64
}

// New validates that the requested method works on this machine and
// returns a Source for it. Register-based kinds fail on non-amd64
// builds; RDTSCP additionally requires cpuid support. The wall-clock
// kinds are probed once so a broken clock fails here, before any
// measurement starts.
func New(kind Kind) (*Source, error) {
	switch {
	case kind.registerBased():
		if err := checkTSC(kind); err != nil {
			return nil, err
		}
	case kind == Monotonic || kind == NonMonotonic:
		if _, err := readClock(kind); err != nil {
			return nil, fmt.Errorf("probe %s: %w", kind, err)
		}
	default:
		return nil, fmt.Errorf("timesource: unknown kind %d", int(kind))
	}

	return &Source{kind: kind}, nil
}

// Kind returns the active sampling method.
func (s *Source) Kind() Kind {
	return s.kind
}

// Suppressed reports whether sampling is switched off.
func (s *Source) Suppressed() bool {
	return s.suppressed
}

// SetSuppressed switches sampling off (or back on). Only call between
// runs, never while a worker is sampling.
func (s *Source) SetSuppressed(v bool) {
	s.suppressed = v
}

// Sample returns the current counter value in the method's native unit
// (cycles for the register reads, nanoseconds for the clocks), or 0
// immediately when suppressed.
func (s *Source) Sample() uint64 {
	if s.suppressed {
		return 0
	}

	switch s.kind {
	case RDTSCP:
		tsc, _ := rdtscp()
		return tsc
	case RDTSC:
		return rdtsc()
	case RDTSCLfence:
		return rdtscLfence()
	case RDTSCCAS:
		return s.sampleMemoized()
	default:
		ns, err := readClock(s.kind)
		if err != nil {
			// The clock was probed successfully in New; a failure
			// here means measurement cannot continue.
			panic(fmt.Sprintf("timesource: %s failed mid-run: %v", s.kind, err))
		}
		return ns
	}
}

// sampleMemoized returns the cached timestamp, refreshing it with a
// real rdtsc only when this caller wins the CAS. Losers either take the
// value the CAS observed (if unlocked) or spin, yielding the CPU each
// iteration, until the in-flight reader publishes. At most one caller
// performs the hardware read at a time, and every caller sees either
// the previous published value or the new one, never a torn one.
func (s *Source) sampleMemoized() uint64 {
	cur := s.memo.Load()

	if cur&1 == 0 {
		if s.memo.CompareAndSwap(cur, cur|1) {
			now := rdtsc() &^ 1
			s.memo.Store(now)

			return now
		}

		if v := s.memo.Load(); v&1 == 0 {
			return v
		}
	}

	for {
		v := s.memo.Load()
		if v != cur && v&1 == 0 {
			return v
		}
		runtime.Gosched()
	}
}
