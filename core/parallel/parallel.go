// Package parallel splits independent row or column work across CPU cores.
//
// Only work that reads shared state without mutating it belongs here: scoring
// rows against a fixed weight vector, or per-column statistics. The perceptron
// update pass is order dependent and is never parallelized.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the item count at or below which work stays sequential.
const DefaultThreshold = 1000

// Parallelize calls fn on contiguous [start, end) chunks covering [0, items),
// one chunk per worker, and waits for all of them.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) inline when items <= threshold
// and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
