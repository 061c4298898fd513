// Package harness runs a workload on a single background worker for a
// fixed wall-clock duration and reports the achieved call rate.
//
// The run protocol is deliberately primitive: the controller starts one
// worker goroutine, sleeps for the configured duration, flips the stop
// signal, and joins. The worker busy-polls the signal between (and
// inside) workload invocations. Nothing else blocks, so the measured
// steady-state throughput carries no blocking-primitive overhead.
package harness

import (
	"errors"
	"log/slog"
	"time"

	"github.com/weiihann/tscbench/report"
	"github.com/weiihann/tscbench/stop"
	"github.com/weiihann/tscbench/timesource"
)

// ErrDegenerateTiming is returned when a run's measured elapsed time is
// not positive. A rate cannot be derived from it; the run is invalid.
var ErrDegenerateTiming = errors.New("harness: measured elapsed time is not positive")

// Workload is one unit of CPU work. Run executes until the unit
// completes or the signal is set, whichever comes first, and returns
// how many loops it counted (one per time-source sample point).
type Workload interface {
	Name() string
	Run(sig *stop.Signal) uint64
}

// Harness executes timed runs. One Harness may run any number of
// workloads, strictly one at a time.
type Harness struct {
	duration time.Duration
	sig      *stop.Signal
	logger   *slog.Logger
	printer  *report.Printer
}

// New creates a Harness that runs workloads for the given duration.
func New(duration time.Duration, logger *slog.Logger, printer *report.Printer) *Harness {
	return &Harness{
		duration: duration,
		sig:      stop.New(),
		logger:   logger,
		printer:  printer,
	}
}

// Run executes w repeatedly on a background worker for the configured
// duration and returns the achieved rate. src is only consulted for the
// status line (variant name and suppression marker); the workload holds
// its own reference for sampling.
func (h *Harness) Run(w Workload, src *timesource.Source) (Result, error) {
	h.logger.Debug("starting timed run",
		slog.String("workload", w.Name()),
		slog.String("clock", src.Kind().String()),
		slog.Bool("suppressed", src.Suppressed()),
		slog.Duration("duration", h.duration),
	)

	loops, elapsed := h.timedRun(func(sig *stop.Signal) uint64 {
		var n uint64
		for !sig.Stopped() {
			n += w.Run(sig)
		}

		return n
	})

	rate, err := callsPerSec(loops, elapsed)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Workload:    w.Name(),
		Clock:       src.Kind().String(),
		Suppressed:  src.Suppressed(),
		Loops:       loops,
		Elapsed:     elapsed,
		CallsPerSec: rate,
	}

	h.printer.WorkloadRate(res.Workload, res.Clock, res.Suppressed, res.CallsPerSec)

	return res, nil
}

// RunSampler executes a dedicated tight loop that does nothing but
// sample src, isolating the cost of the sampling primitive from any
// workload interference. Every call counts as one loop.
func (h *Harness) RunSampler(src *timesource.Source) (Result, error) {
	h.logger.Debug("starting sampler run",
		slog.String("clock", src.Kind().String()),
		slog.Duration("duration", h.duration),
	)

	loops, elapsed := h.timedRun(func(sig *stop.Signal) uint64 {
		var n uint64
		for !sig.Stopped() {
			n++
			src.Sample()
		}

		return n
	})

	rate, err := callsPerSec(loops, elapsed)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Clock:       src.Kind().String(),
		Suppressed:  src.Suppressed(),
		Loops:       loops,
		Elapsed:     elapsed,
		CallsPerSec: rate,
	}

	h.printer.SamplerRate(res.Clock, res.CallsPerSec)

	return res, nil
}

// timedRun implements the worker/controller protocol: reset the signal,
// run body on a fresh goroutine from T0, sleep, stop, join. Elapsed is
// measured inside the worker from T0 to completion so it covers exactly
// the interval the loop counter accumulated over.
func (h *Harness) timedRun(body func(sig *stop.Signal) uint64) (uint64, time.Duration) {
	h.sig.Reset()

	var (
		loops   uint64
		elapsed time.Duration
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		start := time.Now()
		loops = body(h.sig)
		elapsed = time.Since(start)
	}()

	time.Sleep(h.duration)
	h.sig.Stop()
	<-done

	return loops, elapsed
}

func callsPerSec(loops uint64, elapsed time.Duration) (uint64, error) {
	// time.Since is monotonic, but a rate derived from a non-positive
	// interval is meaningless either way. Fail loudly.
	micros := elapsed.Microseconds()
	if micros <= 0 {
		return 0, ErrDegenerateTiming
	}

	return loops * 1_000_000 / uint64(micros), nil
}
