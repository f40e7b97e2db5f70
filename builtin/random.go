/*
File    : molcore/builtin/random.go
Package : builtin
*/
package builtin

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// rng is the process-global, mutex-protected random source backing
// math.random/math.random_integer/math.die_roll* (spec.md §4.7, §5):
// results are non-deterministic across runs but safe under concurrent
// evaluation from multiple goroutines. Seeded from the wall clock like
// go-mix's std/math.go init(), rather than a fixed seed.
var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func uniform(lo, hi float64) float64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + rng.Float64()*(hi-lo)
}

func uniformInt(lo, hi float64) float64 {
	loI, hiI := int64(math.Floor(lo)), int64(math.Floor(hi))
	if loI > hiI {
		loI, hiI = hiI, loI
	}
	rngMu.Lock()
	defer rngMu.Unlock()
	span := hiI - loI + 1
	return float64(loI + rng.Int63n(span))
}

func init() {
	register("math.random", 2, func(a []float64) (float64, error) {
		return uniform(a[0], a[1]), nil
	})
	register("math.random_integer", 2, func(a []float64) (float64, error) {
		return uniformInt(a[0], a[1]), nil
	})
	// die_roll sums n independent draws over [lo, hi] -- not n*random(...)
	// (SPEC_FULL.md §C, following the original Molang behavior).
	register("math.die_roll", 3, func(a []float64) (float64, error) {
		n := int(math.Max(0, math.Floor(a[0])))
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += uniform(a[1], a[2])
		}
		return sum, nil
	})
	register("math.die_roll_integer", 3, func(a []float64) (float64, error) {
		n := int(math.Max(0, math.Floor(a[0])))
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += uniformInt(a[1], a[2])
		}
		return sum, nil
	})
}
