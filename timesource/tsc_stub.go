//go:build !amd64

package timesource

import "errors"

// ErrTSCUnsupported is returned for register-based kinds on
// architectures without an rdtsc-style counter read.
var ErrTSCUnsupported = errors.New(
	"timesource: register-based reads require amd64")

func checkTSC(Kind) error {
	return ErrTSCUnsupported
}

// The register readers are unreachable on this architecture because
// New refuses every register-based kind, but the dispatch in Sample
// still needs the symbols.

func rdtscp() (uint64, uint32) {
	panic(ErrTSCUnsupported)
}

func rdtsc() uint64 {
	panic(ErrTSCUnsupported)
}

func rdtscLfence() uint64 {
	panic(ErrTSCUnsupported)
}

// Calibrate reports that no TSC is available.
func Calibrate() (float64, error) {
	return 0, ErrTSCUnsupported
}
