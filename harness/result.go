package harness

import "time"

// Result holds the outcome of one timed run. It is produced once per
// run and consumed immediately by the driver or the comparison runner.
type Result struct {
	Workload    string
	Clock       string
	Suppressed  bool
	Loops       uint64
	Elapsed     time.Duration
	CallsPerSec uint64
}

// CompareResult pairs the two runs of a comparison and their ratio.
type CompareResult struct {
	Sampled    Result
	Suppressed Result

	// Ratio is the sampled rate divided by the suppressed rate; values
	// below 1 quantify the slowdown the timestamp reads impose.
	Ratio float64
}
