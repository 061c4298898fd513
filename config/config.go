// Package config resolves the command-line tokens into one immutable
// run configuration. Tokens are order-independent and repeatable; when
// workload or clock tokens conflict, the last one wins.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/weiihann/tscbench/timesource"
)

// DefaultDuration is how long each timed run lasts unless overridden.
const DefaultDuration = 10 * time.Second

// WorkloadKind selects which workload a run drives, if any.
type WorkloadKind int

const (
	// WorkloadNone means only the sampling primitive itself is timed.
	WorkloadNone WorkloadKind = iota
	// WorkloadLowIPC is the cache-missing pointer chase.
	WorkloadLowIPC
	// WorkloadHighIPC is the dense matrix multiplication.
	WorkloadHighIPC
)

func (k WorkloadKind) String() string {
	switch k {
	case WorkloadLowIPC:
		return "low_ipc"
	case WorkloadHighIPC:
		return "high_ipc"
	default:
		return "none"
	}
}

// Config is the resolved run configuration. It is immutable after
// Parse; everything downstream receives it by value.
type Config struct {
	Workload WorkloadKind
	Clock    timesource.Kind
	Suppress bool
	Compare  bool
	Factor   int
	Duration time.Duration
}

// Parse resolves the recognized tokens into a Config.
//
// Defaults follow the original tool: a run with neither workload nor
// clock tokens is a low-IPC run; cmp without a workload is a low-IPC
// comparison; a clock token alone selects the sampler-only mode; the
// clock defaults to rdtscp whenever no clock token appears. notsc only
// suppresses sampling, it neither selects a clock nor a workload.
func Parse(args []string) (Config, error) {
	cfg := Config{
		Factor:   1,
		Duration: DefaultDuration,
	}

	var haveWorkload, haveClock bool

	setClock := func(k timesource.Kind) {
		cfg.Clock = k
		haveClock = true
	}

	for _, arg := range args {
		switch {
		case arg == "low_ipc":
			cfg.Workload = WorkloadLowIPC
			haveWorkload = true
		case arg == "high_ipc":
			cfg.Workload = WorkloadHighIPC
			haveWorkload = true
		case arg == "notsc":
			cfg.Suppress = true
		case arg == "rdtscp":
			setClock(timesource.RDTSCP)
		case arg == "rdtsc":
			setClock(timesource.RDTSC)
		case arg == "rdtsc_lfence":
			setClock(timesource.RDTSCLfence)
		case arg == "rdtsc_cas":
			setClock(timesource.RDTSCCAS)
		case arg == "clock_gettime":
			setClock(timesource.Monotonic)
		case arg == "clock_gettime_non_monotonic":
			setClock(timesource.NonMonotonic)
		case arg == "cmp":
			cfg.Compare = true
		case strings.HasPrefix(arg, "factor="):
			raw := strings.TrimPrefix(arg, "factor=")

			n, err := strconv.Atoi(raw)
			if err != nil {
				return Config{}, fmt.Errorf("factor: %q is not an integer", raw)
			}
			if n < 0 {
				return Config{}, fmt.Errorf("factor: %d is negative", n)
			}

			cfg.Factor = n
		default:
			return Config{}, fmt.Errorf("unrecognized argument %q", arg)
		}
	}

	if !haveWorkload {
		if !haveClock || cfg.Compare {
			cfg.Workload = WorkloadLowIPC
		} else {
			cfg.Workload = WorkloadNone
		}
	}

	if !haveClock {
		cfg.Clock = timesource.RDTSCP
	}

	return cfg, nil
}

// Usage returns the usage text printed on a parse failure.
func Usage() string {
	return `usage: tscbench [ipc_mode] [cmp] [clock] [factor=N]
	valid ipc modes are low_ipc and high_ipc
	valid clock modes are notsc, rdtscp, rdtsc, rdtsc_lfence, rdtsc_cas, clock_gettime, clock_gettime_non_monotonic
	cmp: compares the ipc mode with and without tsc reads
	factor=N: allows tuning the IPC of the low_ipc loop.  Higher factors result in higher IPC
`
}
