package config

import (
	"testing"
	"time"

	"github.com/weiihann/tscbench/timesource"
)

func TestParseDefaults(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "empty args is a low ipc rdtscp run",
			args: nil,
			want: Config{
				Workload: WorkloadLowIPC,
				Clock:    timesource.RDTSCP,
				Factor:   1,
				Duration: DefaultDuration,
			},
		},
		{
			name: "explicit low_ipc matches empty args",
			args: []string{"low_ipc"},
			want: Config{
				Workload: WorkloadLowIPC,
				Clock:    timesource.RDTSCP,
				Factor:   1,
				Duration: DefaultDuration,
			},
		},
		{
			name: "clock alone selects sampler mode",
			args: []string{"rdtsc"},
			want: Config{
				Workload: WorkloadNone,
				Clock:    timesource.RDTSC,
				Factor:   1,
				Duration: DefaultDuration,
			},
		},
		{
			name: "cmp without workload defaults to low ipc",
			args: []string{"cmp", "clock_gettime"},
			want: Config{
				Workload: WorkloadLowIPC,
				Clock:    timesource.Monotonic,
				Compare:  true,
				Factor:   1,
				Duration: DefaultDuration,
			},
		},
		{
			name: "notsc alone suppresses a default low ipc run",
			args: []string{"notsc"},
			want: Config{
				Workload: WorkloadLowIPC,
				Clock:    timesource.RDTSCP,
				Suppress: true,
				Factor:   1,
				Duration: DefaultDuration,
			},
		},
		{
			name: "full selection",
			args: []string{"high_ipc", "cmp", "rdtsc_lfence", "factor=4"},
			want: Config{
				Workload: WorkloadHighIPC,
				Clock:    timesource.RDTSCLfence,
				Compare:  true,
				Factor:   4,
				Duration: DefaultDuration,
			},
		},
		{
			name: "last clock wins",
			args: []string{"rdtscp", "low_ipc", "rdtsc_cas"},
			want: Config{
				Workload: WorkloadLowIPC,
				Clock:    timesource.RDTSCCAS,
				Factor:   1,
				Duration: DefaultDuration,
			},
		},
		{
			name: "last workload wins",
			args: []string{"low_ipc", "high_ipc"},
			want: Config{
				Workload: WorkloadHighIPC,
				Clock:    timesource.RDTSCP,
				Factor:   1,
				Duration: DefaultDuration,
			},
		},
		{
			name: "factor zero is legal",
			args: []string{"factor=0"},
			want: Config{
				Workload: WorkloadLowIPC,
				Clock:    timesource.RDTSCP,
				Factor:   0,
				Duration: DefaultDuration,
			},
		},
		{
			name: "non monotonic clock token",
			args: []string{"clock_gettime_non_monotonic"},
			want: Config{
				Workload: WorkloadNone,
				Clock:    timesource.NonMonotonic,
				Factor:   1,
				Duration: DefaultDuration,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v): %v", tt.args, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unrecognized token", []string{"bogus"}},
		{"non numeric factor", []string{"factor=abc"}},
		{"empty factor", []string{"factor="}},
		{"negative factor", []string{"factor=-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.args); err == nil {
				t.Errorf("Parse(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestDefaultDuration(t *testing.T) {
	if DefaultDuration != 10*time.Second {
		t.Errorf("DefaultDuration = %v, want 10s", DefaultDuration)
	}
}

func TestWorkloadKindString(t *testing.T) {
	if WorkloadLowIPC.String() != "low_ipc" ||
		WorkloadHighIPC.String() != "high_ipc" ||
		WorkloadNone.String() != "none" {
		t.Error("unexpected WorkloadKind labels")
	}
}
