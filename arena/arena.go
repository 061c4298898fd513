// Package arena provides the shared numeric buffer both workloads run
// against. The default size is far larger than any cache so the
// pointer-chasing workload misses constantly; the matrix workload
// reinterprets the front of the same buffer as three packed squares.
package arena

import (
	"fmt"
	mrand "math/rand"
)

// DefaultSize is the arena length in uint64 entries (64Mi entries,
// 512MiB), sized to defeat cache locality.
const DefaultSize = 64 * 1024 * 1024

// seedPool is how many random values the fill cycles through.
const seedPool = 2048

// Arena is a contiguous block of unsigned 64-bit cells. It is owned by
// the process for its lifetime and only ever touched by one worker at
// a time.
type Arena []uint64

// New allocates an arena of the given length and fills it from a pool
// of seedPool random values, repeated cyclically.
func New(size uint64, seed int64) Arena {
	rng := mrand.New(mrand.NewSource(seed))

	pool := make([]uint64, seedPool)
	for i := range pool {
		pool[i] = rng.Uint64()
	}

	a := make(Arena, size)
	for i := range a {
		a[i] = pool[i%seedPool]
	}

	return a
}

// Matrices returns three packed side×side views over the front of the
// arena: operands a and b and result c for the matrix workload.
func (a Arena) Matrices(side uint64) (m1, m2, m3 []uint64, err error) {
	n := side * side
	if uint64(len(a)) < 3*n {
		return nil, nil, nil, fmt.Errorf(
			"arena: %d cells cannot hold three %dx%d matrices", len(a), side, side)
	}

	return a[0:n], a[n : 2*n], a[2*n : 3*n], nil
}
