// Package workload provides the two synthetic CPU workloads whose
// timestamp-read overhead the harness measures: a pointer-chasing loop
// built to miss the cache (low IPC) and a dense matrix multiplication
// built to saturate the ALUs (high IPC).
//
// Both workloads sample their time source at a fixed stride and count
// one loop per sample taken; the harness turns that count into a rate.
// Both poll the stop signal, but at different granularity: the low-IPC
// loop once per outer iteration (bounding overshoot to one outer pass,
// about 256k dereferences), the high-IPC loop after every
// multiply-accumulate, because a single invocation otherwise runs for
// the full side^3 product.
package workload

import (
	mrand "math/rand"

	"github.com/weiihann/tscbench/arena"
	"github.com/weiihann/tscbench/stop"
	"github.com/weiihann/tscbench/timesource"
)

// sampleStride is how many loop evaluations pass between time source
// samples in both workloads.
const sampleStride = 500

// DefaultSide is the side length of the three packed matrices the
// high-IPC workload multiplies.
const DefaultSide = 105

// LowIPC chases pseudo-random indices through the arena so nearly
// every dereference misses the cache. Factor adds cheap accumulation
// arithmetic per outer iteration, raising IPC without adding misses.
type LowIPC struct {
	arena  arena.Arena
	src    *timesource.Source
	factor int
	rng    *mrand.Rand
	sink   uint64
}

// NewLowIPC creates the pointer-chasing workload. factor must be >= 0;
// 0 disables the accumulation updates entirely.
func NewLowIPC(a arena.Arena, src *timesource.Source, factor int, seed int64) *LowIPC {
	return &LowIPC{
		arena:  a,
		src:    src,
		factor: factor,
		rng:    mrand.New(mrand.NewSource(seed)),
	}
}

// Name returns the label used in status lines.
func (w *LowIPC) Name() string {
	return "low IPC"
}

// Run executes 1024 outer iterations of the chase, sampling the time
// source at every 500th combined (i*j) count and counting one loop per
// sample. Every index is reduced modulo the arena length, so any seed
// and any arena size stay in bounds. The stop signal is checked once
// per outer iteration. Returns the number of loops counted.
func (w *LowIPC) Run(sig *stop.Signal) uint64 {
	m := w.arena
	size := uint64(len(m))

	index := w.rng.Uint64() % size

	var (
		val   uint64
		loops uint64
		dst   uint64
	)

	for i := uint64(0); i < 1024; i++ {
		src := m[index] % size
		index = (index + 1) % size
		dst = m[src] % size

		for j := uint64(0); j < 256; j++ {
			dst = m[(dst+j)%size] % size
			if (i*j)%sampleStride == 0 {
				val += w.src.Sample()
				loops++
			}
		}

		for k := 0; k < 2*w.factor; k++ {
			m[dst] += m[(src+uint64(k))%size] + m[(dst+uint64(k))%size]
		}

		if sig.Stopped() {
			break
		}
	}

	// Keep the chase results observable so the loops cannot be
	// eliminated as dead code.
	w.sink = m[dst] + val

	return loops
}

// HighIPC multiplies two packed square matrices from the arena into a
// third, sampling the time source every 500 multiply-accumulates.
type HighIPC struct {
	side uint64
	src  *timesource.Source

	m1, m2, m3 []uint64
}

// NewHighIPC creates the matrix workload over three side×side views of
// the arena. The arena must hold at least 3*side*side cells.
func NewHighIPC(a arena.Arena, src *timesource.Source, side uint64) (*HighIPC, error) {
	m1, m2, m3, err := a.Matrices(side)
	if err != nil {
		return nil, err
	}

	return &HighIPC{
		side: side,
		src:  src,
		m1:   m1,
		m2:   m2,
		m3:   m3,
	}, nil
}

// Name returns the label used in status lines.
func (w *HighIPC) Name() string {
	return "high IPC"
}

// Run computes m3 = m1 × m2 with the classic triple loop. The loop
// counter increments once per 500-multiply-accumulate batch sampled
// (never per row). The stop signal is checked after every innermost
// operation and ends the invocation immediately.
func (w *HighIPC) Run(sig *stop.Signal) uint64 {
	n := w.side

	var (
		ops   uint64
		loops uint64
	)

	for i := uint64(0); i < n; i++ {
		for j := uint64(0); j < n; j++ {
			w.m3[i*n+j] = 0

			for k := uint64(0); k < n; k++ {
				w.m3[i*n+j] += w.m1[i*n+k] * w.m2[k*n+j]

				ops++
				if ops%sampleStride == 0 {
					w.src.Sample()
					loops++
				}

				if sig.Stopped() {
					return loops
				}
			}
		}
	}

	return loops
}
