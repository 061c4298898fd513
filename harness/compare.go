package harness

import (
	"fmt"

	"github.com/weiihann/tscbench/timesource"
)

// Compare runs w twice, strictly in sequence because both runs share
// the arena and the stop signal: once with src as configured, once with
// sampling suppressed, and reports the ratio of the two rates. The
// source's suppression state is restored afterwards so further runs in
// the same process see the configuration they started with.
func (h *Harness) Compare(w Workload, src *timesource.Source) (CompareResult, error) {
	sampled, err := h.Run(w, src)
	if err != nil {
		return CompareResult{}, fmt.Errorf("sampled run: %w", err)
	}

	was := src.Suppressed()
	src.SetSuppressed(true)
	defer src.SetSuppressed(was)

	suppressed, err := h.Run(w, src)
	if err != nil {
		return CompareResult{}, fmt.Errorf("suppressed run: %w", err)
	}

	if suppressed.CallsPerSec == 0 {
		return CompareResult{}, fmt.Errorf(
			"suppressed run achieved no calls: %w", ErrDegenerateTiming)
	}

	res := CompareResult{
		Sampled:    sampled,
		Suppressed: suppressed,
		Ratio:      float64(sampled.CallsPerSec) / float64(suppressed.CallsPerSec),
	}

	h.printer.Ratio(res.Ratio)

	return res, nil
}
