//go:build linux

package timesource

import "golang.org/x/sys/unix"

// readClock returns nanoseconds since an arbitrary epoch from
// clock_gettime. Monotonic uses CLOCK_MONOTONIC; NonMonotonic uses
// CLOCK_REALTIME, the clock that may legitimately step backwards.
func readClock(kind Kind) (uint64, error) {
	clockID := int32(unix.CLOCK_MONOTONIC)
	if kind == NonMonotonic {
		clockID = unix.CLOCK_REALTIME
	}

	var ts unix.Timespec
	if err := unix.ClockGettime(clockID, &ts); err != nil {
		return 0, err
	}

	return uint64(ts.Sec)*1e9 + uint64(ts.Nsec), nil
}
