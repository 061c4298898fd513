//go:build amd64

package timesource

import (
	"fmt"
	"time"

	"github.com/klauspost/cpuid/v2"
)

// rdtscp reads the time-stamp counter with the serializing RDTSCP
// instruction. aux carries the processor id the instruction reports.
// Implemented in tsc_amd64.s.
func rdtscp() (tsc uint64, aux uint32)

// rdtsc reads the time-stamp counter with the plain RDTSC instruction.
// Implemented in tsc_amd64.s.
func rdtsc() uint64

// rdtscLfence issues LFENCE and then reads the counter, preventing
// later loads from being reordered ahead of the read.
// Implemented in tsc_amd64.s.
func rdtscLfence() uint64

func checkTSC(kind Kind) error {
	if kind == RDTSCP && !cpuid.CPU.Supports(cpuid.RDTSCP) {
		return fmt.Errorf("timesource: cpu %q does not support rdtscp",
			cpuid.CPU.BrandName)
	}

	return nil
}

// Calibrate estimates the TSC rate in cycles per nanosecond by timing
// a short sleep against the wall clock. The result is approximate and
// moves with frequency scaling; it is reported for orientation, not
// used in any rate computation.
func Calibrate() (float64, error) {
	// Warm the read path.
	rdtsc()
	rdtsc()

	start := rdtsc()
	t0 := time.Now()
	time.Sleep(10 * time.Millisecond)
	end := rdtsc()
	elapsed := time.Since(t0)

	return float64(end-start) / float64(elapsed.Nanoseconds()), nil
}
