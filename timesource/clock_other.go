//go:build !linux

package timesource

import "time"

// Without clock_gettime the monotonic variant reads the runtime's
// monotonic clock and the non-monotonic variant reads the wall clock.

var clockEpoch = time.Now()

func readClock(kind Kind) (uint64, error) {
	if kind == NonMonotonic {
		return uint64(time.Now().UnixNano()), nil
	}

	return uint64(time.Since(clockEpoch).Nanoseconds()), nil
}
