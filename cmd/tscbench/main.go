// Package main provides the CLI entry point for tscbench, a benchmark
// for CPU timestamp-reading instructions under low- and high-IPC
// workloads.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"

	"github.com/weiihann/tscbench/arena"
	"github.com/weiihann/tscbench/config"
	"github.com/weiihann/tscbench/harness"
	"github.com/weiihann/tscbench/report"
	"github.com/weiihann/tscbench/timesource"
	"github.com/weiihann/tscbench/workload"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tscbench:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var durationSecs int

	cmd := &cobra.Command{
		Use:   "tscbench [low_ipc|high_ipc] [cmp] [clock] [factor=N]",
		Short: "Benchmark rdtscp, rdtsc and clock_gettime under low and high IPC loops",
		Long: `Tscbench measures how many timestamp reads per second each sampling
method achieves and how much the reads slow down a memory-bound
(low IPC) or arithmetic-bound (high IPC) workload. With cmp it runs the
selected workload with and without sampling and reports the ratio.

All results go to stderr so they survive stdout redirection.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Parse(args)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), config.Usage())

				return err
			}

			cfg.Duration = time.Duration(durationSecs) * time.Second

			return run(logger, cfg, options{
				arenaSize: arena.DefaultSize,
				out:       cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().IntVar(&durationSecs, "duration", 10,
		"Seconds each timed run lasts")

	return cmd
}

// options carries the run-time knobs the tests shrink.
type options struct {
	arenaSize uint64
	out       io.Writer
}

func run(logger *slog.Logger, cfg config.Config, opts options) error {
	logCPU(logger)

	printer := report.NewPrinter(opts.out)

	src, err := timesource.New(cfg.Clock)
	if err != nil {
		return fmt.Errorf("select clock: %w", err)
	}

	src.SetSuppressed(cfg.Suppress)
	if cfg.Suppress {
		logger.Info("disabling tsc reads")
	}

	h := harness.New(cfg.Duration, logger, printer)

	// A clock selection without a workload times the sampling
	// primitive itself.
	if cfg.Workload == config.WorkloadNone {
		_, err := h.RunSampler(src)

		return err
	}

	logger.Info("filling arena", slog.Uint64("cells", opts.arenaSize))
	a := arena.New(opts.arenaSize, time.Now().UnixNano())

	var w harness.Workload

	switch cfg.Workload {
	case config.WorkloadLowIPC:
		logger.Info("running low IPC test",
			slog.String("clock", cfg.Clock.String()),
			slog.Int("factor", cfg.Factor),
		)

		w = workload.NewLowIPC(a, src, cfg.Factor, time.Now().UnixNano())
	case config.WorkloadHighIPC:
		logger.Info("running high IPC test",
			slog.String("clock", cfg.Clock.String()),
		)

		w, err = workload.NewHighIPC(a, src, workload.DefaultSide)
		if err != nil {
			return fmt.Errorf("build high IPC workload: %w", err)
		}
	}

	if cfg.Compare {
		_, err := h.Compare(w, src)

		return err
	}

	_, err = h.Run(w, src)

	return err
}

func logCPU(logger *slog.Logger) {
	logger.Info("cpu",
		slog.String("brand", cpuid.CPU.BrandName),
		slog.Int("logical_cores", cpuid.CPU.LogicalCores),
		slog.Bool("rdtscp", cpuid.CPU.Supports(cpuid.RDTSCP)),
	)

	if ratio, err := timesource.Calibrate(); err == nil {
		logger.Info("tsc calibration",
			slog.String("cycles_per_ns", fmt.Sprintf("%.2f", ratio)),
		)
	}
}
